package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwtech/license-orderflow/internal/docstore"
)

const maxListedCollections = 10

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	StoreDriver      string   `json:"store_driver"`
	Database         string   `json:"database"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Region           string   `json:"aws_region"`
	TablePrefix      string   `json:"table_prefix"`
}

// diagnostics always answers 200; store problems are reported in the body.
func (a *api) diagnostics(c *gin.Context) {
	resp := diagnosticsResponse{
		Backend:          "Running",
		StoreDriver:      a.diag.Driver,
		Database:         "Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Region:           setOrNot(a.diag.Region),
		TablePrefix:      setOrNot(a.diag.TablePrefix),
	}

	if a.store != nil {
		resp.Database = "Available"
		resp.ConnectionStatus = "Connected"
		if inspector, ok := a.store.(docstore.Inspector); ok {
			resp.StoreDriver = inspector.Driver()
			names, err := inspector.Collections(c.Request.Context())
			if err != nil {
				a.log.Warn(c.Request.Context(), "diagnostics.collections_failed", err)
				resp.Database = "Connected but Error: " + truncate(err.Error(), 50)
			} else {
				if len(names) > maxListedCollections {
					names = names[:maxListedCollections]
				}
				if names != nil {
					resp.Collections = names
				}
				resp.Database = "Connected & Working"
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func setOrNot(v string) string {
	if v == "" {
		return "Not Set"
	}
	return "Set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
