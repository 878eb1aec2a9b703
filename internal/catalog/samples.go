package catalog

const sampleTermsURL = "https://saad.example.com/terms"

// SamplePlans returns the plans written by Seed into an empty catalog.
func SamplePlans() []Product {
	return []Product{
		{
			Name:           "Saad Basic",
			SKU:            "SAAD-BASIC-1Y",
			Vendor:         DefaultVendor,
			Description:    "Entry plan ideal for small teams",
			Price:          99.0,
			DurationMonths: 12,
			Tier:           "Basic",
			Features:       []string{"Up to 10 users", "Email support", "Core features"},
			TermsURL:       sampleTermsURL,
		},
		{
			Name:           "Saad Pro",
			SKU:            "SAAD-PRO-1Y",
			Vendor:         DefaultVendor,
			Description:    "Professional plan for growing companies",
			Price:          249.0,
			DurationMonths: 12,
			Tier:           "Pro",
			Features:       []string{"Up to 50 users", "Priority support", "Advanced analytics"},
			TermsURL:       sampleTermsURL,
		},
		{
			Name:           "Saad Enterprise",
			SKU:            "SAAD-ENT-1Y",
			Vendor:         DefaultVendor,
			Description:    "Enterprise-grade with SSO and dedicated support",
			Price:          599.0,
			DurationMonths: 12,
			Tier:           "Enterprise",
			Features:       []string{"Unlimited users", "SSO/SAML", "Dedicated CSM"},
			TermsURL:       sampleTermsURL,
		},
	}
}
