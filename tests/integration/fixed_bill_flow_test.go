package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestFixedBillFlow_CRUD(t *testing.T) {
	app := setupApp(t)
	userID := app.registerUser(t, "bills@test.com")

	// Create two bills
	rec := app.request("POST", "/contas-fixas/create",
		fmt.Sprintf(`{"user_id":%.0f,"nome":"Aluguel","valor":1500.00,"dia_vencimento":5}`, userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	first := parseJSON(t, rec)["conta_fixa"].(map[string]interface{})
	if first["ativa"] != true {
		t.Errorf("expected active default, got %v", first["ativa"])
	}

	rec = app.request("POST", "/contas-fixas/create",
		fmt.Sprintf(`{"user_id":%.0f,"nome":"Internet","valor":99.90,"dia_vencimento":10}`, userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	second := parseJSON(t, rec)["conta_fixa"].(map[string]interface{})

	// dia_vencimento out of range is rejected
	rec = app.request("POST", "/contas-fixas/create",
		fmt.Sprintf(`{"user_id":%.0f,"nome":"Luz","valor":80.00,"dia_vencimento":32}`, userID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for dia_vencimento 32, got %d", rec.Code)
	}

	// List newest first
	rec = app.request("GET", fmt.Sprintf("/contas-fixas/minhascontas?user_id=%.0f", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(data))
	}
	if data[0].(map[string]interface{})["nome"] != "Internet" {
		t.Errorf("expected Internet first, got %v", data[0].(map[string]interface{})["nome"])
	}

	// Deactivate one
	billID := second["id"].(float64)
	rec = app.request("PUT", fmt.Sprintf("/contas-fixas/alterar/%.0f", billID), `{"ativa":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}

	// The dashboard sum reflects active bills only
	rec = app.request("GET", fmt.Sprintf("/dashboard/somacontasfixas?user_id=%.0f", userID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	sum := parseJSON(t, rec)["soma_contas_fixas"].(float64)
	if sum != 1500 {
		t.Errorf("expected active sum 1500, got %v", sum)
	}

	// Delete
	rec = app.request("DELETE", fmt.Sprintf("/contas-fixas/deletar/%.0f", billID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("DELETE", fmt.Sprintf("/contas-fixas/deletar/%.0f", billID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", rec.Code)
	}
}
