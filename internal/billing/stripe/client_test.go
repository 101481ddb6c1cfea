package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRetrieveCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/customers/cus_1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Fatalf("missing bearer auth")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_1","email":" jane@example.com ","name":"Jane Doe"}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	customer, err := client.RetrieveCustomer(context.Background(), "cus_1")
	if err != nil {
		t.Fatalf("retrieve customer: %v", err)
	}
	if customer.Email != "jane@example.com" || customer.Name != "Jane Doe" {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	if customer.Deleted {
		t.Fatal("customer must not be deleted")
	}
}

func TestRetrieveCustomerDeletedFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_gone","deleted":true}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	customer, err := client.RetrieveCustomer(context.Background(), "cus_gone")
	if err != nil {
		t.Fatalf("retrieve customer: %v", err)
	}
	if !customer.Deleted {
		t.Fatal("deleted flag must carry through")
	}
}

func TestRetrievePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/prices/price_1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"price_1","nickname":"Household Membership","product":"prod_1","metadata":{"tier":"household"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	price, err := client.RetrievePrice(context.Background(), "price_1")
	if err != nil {
		t.Fatalf("retrieve price: %v", err)
	}
	if price.ProductID != "prod_1" || price.Metadata["tier"] != "household" {
		t.Fatalf("unexpected price: %+v", price)
	}
}

func TestUpstreamErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such customer: 'cus_x'"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	if _, err := client.RetrieveCustomer(context.Background(), "cus_x"); err == nil {
		t.Fatal("expected error for missing customer")
	}
}

func TestMissingAPIKeyFailsFast(t *testing.T) {
	client := NewClient("", "http://localhost:1")
	if _, err := client.RetrieveCustomer(context.Background(), "cus_1"); err == nil {
		t.Fatal("expected error when api key is unset")
	}
}
