package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/gin-gonic/gin"
)

// resourceSetup mirrors chatSetup but returns the project ID for the
// project-scoped resource endpoints.
func resourceSetup(t *testing.T) (r *gin.Engine, projectID uint, supToken, workerToken, strangerToken string) {
	t.Helper()

	r = setupServer(t)
	_, supToken = createUser(t, "sup", types.RoleSupervisor)
	worker, wToken := createUser(t, "worker", types.RoleWorker)
	_, sToken := createUser(t, "stranger", types.RoleWorker)

	project := createProject(t, r, supToken, "Bridge Retrofit")
	projectID = uint(project["id"].(float64))

	assign := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/workers", projectID), supToken,
		gin.H{"email": worker.Email})
	if assign.Code != http.StatusCreated {
		t.Fatalf("assign = %d", assign.Code)
	}

	return r, projectID, supToken, wToken, sToken
}

func TestSupplierLifecycle(t *testing.T) {
	r, projectID, supToken, workerToken, strangerToken := resourceSetup(t)
	base := fmt.Sprintf("/api/projects/%d/suppliers", projectID)

	create := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"name":               "Steel Corp",
		"contact_person":     "Ravi",
		"materials_provided": []string{"rebar", "beams"},
		"reliability_score":  4.5,
		"lead_time_days":     12,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create supplier = %d: %s", create.Code, create.Body.String())
	}

	var supplier map[string]interface{}
	decodeBody(t, create, &supplier)
	supplierID := uint(supplier["id"].(float64))

	// Workers cannot mutate suppliers.
	forbidden := doJSON(t, r, http.MethodPost, base, workerToken, gin.H{"name": "Nope Inc"})
	if forbidden.Code != http.StatusForbidden {
		t.Errorf("worker create supplier = %d, want 403", forbidden.Code)
	}

	// Members read; strangers get a silent empty list.
	var listed []map[string]interface{}
	list := doJSON(t, r, http.MethodGet, base, workerToken, nil)
	decodeBody(t, list, &listed)
	if len(listed) != 1 {
		t.Errorf("member sees %d suppliers, want 1", len(listed))
	}

	list = doJSON(t, r, http.MethodGet, base, strangerToken, nil)
	decodeBody(t, list, &listed)
	if len(listed) != 0 {
		t.Errorf("stranger sees %d suppliers, want 0", len(listed))
	}

	update := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("%s/%d", base, supplierID), supToken,
		gin.H{"name": "Steel Corp Intl", "lead_time_days": 10})
	if update.Code != http.StatusOK {
		t.Fatalf("update supplier = %d: %s", update.Code, update.Body.String())
	}

	del := doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, supplierID), supToken, nil)
	if del.Code != http.StatusNoContent {
		t.Errorf("delete supplier = %d, want 204", del.Code)
	}
}

func TestTimelineLifecycleWithDependencies(t *testing.T) {
	r, projectID, supToken, workerToken, _ := resourceSetup(t)
	base := fmt.Sprintf("/api/projects/%d/timeline", projectID)

	foundation := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"title":      "Foundation",
		"start_date": "2026-01-01",
		"end_date":   "2026-03-01",
	})
	if foundation.Code != http.StatusCreated {
		t.Fatalf("create event = %d: %s", foundation.Code, foundation.Body.String())
	}

	var event map[string]interface{}
	decodeBody(t, foundation, &event)
	foundationID := uint(event["id"].(float64))

	framing := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"title":          "Framing",
		"start_date":     "2026-03-01",
		"end_date":       "2026-06-01",
		"is_milestone":   true,
		"dependency_ids": []uint{foundationID},
	})
	if framing.Code != http.StatusCreated {
		t.Fatalf("create dependent event = %d: %s", framing.Code, framing.Body.String())
	}

	decodeBody(t, framing, &event)
	deps := event["dependency_ids"].([]interface{})
	if len(deps) != 1 || uint(deps[0].(float64)) != foundationID {
		t.Errorf("dependency_ids = %v, want [%d]", deps, foundationID)
	}

	missing := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"title":          "Broken",
		"start_date":     "2026-06-01",
		"end_date":       "2026-07-01",
		"dependency_ids": []uint{9999},
	})
	if missing.Code != http.StatusNotFound {
		t.Errorf("unknown dependency = %d, want 404", missing.Code)
	}

	var listed []map[string]interface{}
	list := doJSON(t, r, http.MethodGet, base, workerToken, nil)
	decodeBody(t, list, &listed)
	if len(listed) != 2 {
		t.Errorf("member sees %d events, want 2", len(listed))
	}
	if listed[0]["title"] != "Foundation" {
		t.Errorf("events not ordered by start date, first = %v", listed[0]["title"])
	}
}

func TestRiskLifecycle(t *testing.T) {
	r, projectID, supToken, _, strangerToken := resourceSetup(t)
	base := fmt.Sprintf("/api/projects/%d/risks", projectID)

	create := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"title":         "Monsoon delay",
		"risk_level":    types.RiskHigh,
		"risk_category": "weather",
		"probability":   0.6,
		"impact":        7,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create risk = %d: %s", create.Code, create.Body.String())
	}

	var risk map[string]interface{}
	decodeBody(t, create, &risk)
	riskID := uint(risk["id"].(float64))

	invalid := doJSON(t, r, http.MethodPost, base, supToken, gin.H{
		"title":         "Bad",
		"risk_level":    "catastrophic",
		"risk_category": "other",
		"probability":   0.5,
		"impact":        5,
	})
	if invalid.Code != http.StatusBadRequest {
		t.Errorf("invalid risk_level = %d, want 400", invalid.Code)
	}

	resolve := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("%s/%d", base, riskID), supToken,
		gin.H{
			"title":         "Monsoon delay",
			"risk_level":    types.RiskHigh,
			"risk_category": "weather",
			"probability":   0.6,
			"impact":        7,
			"is_resolved":   true,
		})
	if resolve.Code != http.StatusOK {
		t.Fatalf("resolve risk = %d: %s", resolve.Code, resolve.Body.String())
	}

	decodeBody(t, resolve, &risk)
	if risk["is_resolved"] != true || risk["resolved_date"] == nil {
		t.Errorf("resolved risk should carry a resolved_date, got %v", risk)
	}

	var listed []map[string]interface{}
	list := doJSON(t, r, http.MethodGet, base, strangerToken, nil)
	decodeBody(t, list, &listed)
	if len(listed) != 0 {
		t.Errorf("stranger sees %d risks, want 0", len(listed))
	}
}

func TestProjectUpdatesMemberAuthored(t *testing.T) {
	r, projectID, supToken, workerToken, strangerToken := resourceSetup(t)
	base := fmt.Sprintf("/api/projects/%d/updates", projectID)

	create := doJSON(t, r, http.MethodPost, base, workerToken, gin.H{
		"title":   "Day 12",
		"content": "Poured the east footing.",
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("worker update = %d: %s", create.Code, create.Body.String())
	}

	forbidden := doJSON(t, r, http.MethodPost, base, strangerToken, gin.H{
		"title":   "Intruder",
		"content": "should not land",
	})
	if forbidden.Code != http.StatusForbidden {
		t.Errorf("stranger update = %d, want 403", forbidden.Code)
	}

	var listed []map[string]interface{}
	list := doJSON(t, r, http.MethodGet, base, supToken, nil)
	decodeBody(t, list, &listed)
	if len(listed) != 1 {
		t.Fatalf("supervisor sees %d updates, want 1", len(listed))
	}
	if listed[0]["author_name"] != "worker" {
		t.Errorf("author_name = %v, want worker", listed[0]["author_name"])
	}
}
