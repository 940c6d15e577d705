package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"netinv/internal/model"
)

func TestBulkUpsert(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devices/bulk-upsert" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Project-ID") != "proj-1" {
			t.Errorf("project header: %s", r.Header.Get("X-Project-ID"))
		}

		var req struct {
			ProjectID string         `json:"projectId"`
			Devices   []model.Device `json:"devices"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Devices) != 2 {
			t.Errorf("device count: %d", len(req.Devices))
		}

		json.NewEncoder(w).Encode(model.BatchOutcome{Success: 2})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	outcome, err := client.BulkUpsert(context.Background(), "proj-1", make([]model.Device, 2))
	if err != nil {
		t.Fatalf("bulk upsert: %v", err)
	}
	if outcome.Success != 2 {
		t.Fatalf("outcome: %+v", outcome)
	}
}

func TestBulkUpsert_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "registry overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.BulkUpsert(context.Background(), "proj-1", make([]model.Device, 1))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "registry overloaded") {
		t.Fatalf("error: %v", err)
	}
}

func TestListDevices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devices" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("project_id") != "proj-1" {
			t.Errorf("query: %s", r.URL.RawQuery)
		}

		var d model.RegistryDevice
		d.ID = "dev-1"
		d.IPAddress = "192.168.1.10"
		json.NewEncoder(w).Encode(map[string]interface{}{"devices": []model.RegistryDevice{d}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	devices, err := client.ListDevices(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("list devices: %v", err)
	}
	if len(devices) != 1 || devices[0].ID != "dev-1" {
		t.Fatalf("devices: %+v", devices)
	}
}

func TestListDevices_ContextTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.ListDevices(ctx, "proj-1"); err == nil {
		t.Fatalf("expected timeout error")
	}
}
