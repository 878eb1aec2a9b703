package catalog

import "time"

// Collection is the document collection holding catalog entries.
const Collection = "licenseproduct"

// DefaultVendor is applied to products created without a vendor and tags every order.
const DefaultVendor = "Saad"

// Product is a licensable plan as stored in the catalog.
// The storage id and timestamps are never exposed through the catalog API.
type Product struct {
	ID             string    `dynamodbav:"id,omitempty" json:"-"`
	Name           string    `dynamodbav:"name" json:"name"`
	SKU            string    `dynamodbav:"sku" json:"sku"`
	Vendor         string    `dynamodbav:"vendor" json:"vendor"`
	Description    string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price          float64   `dynamodbav:"price" json:"price"`
	DurationMonths int       `dynamodbav:"duration_months" json:"duration_months"`
	Tier           string    `dynamodbav:"tier,omitempty" json:"tier,omitempty"`
	Features       []string  `dynamodbav:"features" json:"features"`
	TermsURL       string    `dynamodbav:"terms_url,omitempty" json:"terms_url,omitempty"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"-"`
	UpdatedAt      time.Time `dynamodbav:"updated_at" json:"-"`
}

// SeedResult reports what Seed did. Inserted is set when samples were written,
// Count when the catalog already had entries.
type SeedResult struct {
	Status   string `json:"status"`
	Inserted *int   `json:"inserted,omitempty"`
	Message  string `json:"message,omitempty"`
	Count    *int   `json:"count,omitempty"`
}
