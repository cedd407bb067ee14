package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestDailyEntryFlow_CRUDAndStatistics(t *testing.T) {
	app := setupApp(t)
	userID := app.registerUser(t, "entries@test.com")

	// Record three expenses in March and one in April
	for _, body := range []string{
		fmt.Sprintf(`{"user_id":%.0f,"descricao":"Feira","categoria":"mercado","valor":100.00,"data_registro":"2024-03-02"}`, userID),
		fmt.Sprintf(`{"user_id":%.0f,"descricao":"Padaria","categoria":"mercado","valor":50.00,"data_registro":"2024-03-09"}`, userID),
		fmt.Sprintf(`{"user_id":%.0f,"descricao":"Cinema","categoria":"lazer","valor":50.00,"data_registro":"2024-03-16"}`, userID),
		fmt.Sprintf(`{"user_id":%.0f,"descricao":"Feira","categoria":"mercado","valor":999.00,"data_registro":"2024-04-01"}`, userID),
	} {
		rec := app.request("POST", "/registro/adicionar", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	// List all entries
	rec := app.request("GET", fmt.Sprintf("/registro/mostrar/%.0f", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 4 {
		t.Fatalf("expected 4 entries, got %v", result["total_items"])
	}

	// March total ignores the April entry
	rec = app.request("GET", fmt.Sprintf("/registro/total-gasto-mes/%.0f/3/2024", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("month total failed: %d %s", rec.Code, rec.Body.String())
	}
	if total := parseJSON(t, rec)["total_gasto_mes"].(float64); total != 200 {
		t.Errorf("expected March total 200, got %v", total)
	}

	// Category totals
	rec = app.request("GET", fmt.Sprintf("/registro/total-gasto-categoria/%.0f/3/2024", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("category totals failed: %d %s", rec.Code, rec.Body.String())
	}
	totals := parseJSON(t, rec)["total_por_categoria"].(map[string]interface{})
	if totals["mercado"].(float64) != 150 || totals["lazer"].(float64) != 50 {
		t.Errorf("expected mercado 150 / lazer 50, got %v", totals)
	}

	// Category percentages
	rec = app.request("GET", fmt.Sprintf("/registro/percentual-gasto-categoria/%.0f/3/2024", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("category percentages failed: %d %s", rec.Code, rec.Body.String())
	}
	percents := parseJSON(t, rec)["percentual_por_categoria"].(map[string]interface{})
	if percents["mercado"].(float64) != 75 || percents["lazer"].(float64) != 25 {
		t.Errorf("expected mercado 75%% / lazer 25%%, got %v", percents)
	}

	// Update an entry's amount; the date stays put
	entryID := result["data"].([]interface{})[0].(map[string]interface{})["id"].(float64)
	rec = app.request("PUT", fmt.Sprintf("/registro/alterar/%.0f", entryID), `{"valor":500.00}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["gasto"].(map[string]interface{})
	if updated["data_registro"] != "2024-04-01" {
		t.Errorf("expected date untouched, got %v", updated["data_registro"])
	}

	// Delete
	rec = app.request("DELETE", fmt.Sprintf("/registro/deletar/%.0f", entryID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", fmt.Sprintf("/registro/mostrar/%.0f", userID), "")
	if parseJSON(t, rec)["total_items"].(float64) != 3 {
		t.Error("expected 3 entries after delete")
	}
}
