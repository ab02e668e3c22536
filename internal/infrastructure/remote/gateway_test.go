package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/domain/remote"
)

func testConfig(baseURL string) *Config {
	return &Config{
		ProductBaseURL:   baseURL,
		CompanyBaseURL:   baseURL,
		PartnerBaseURL:   baseURL,
		Timeout:          2 * time.Second,
		BatchConcurrency: 4,
	}
}

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewGateway(testConfig(server.URL))
	require.NoError(t, err)
	return gateway, server
}

func TestNewGateway(t *testing.T) {
	t.Run("rejects relative base URL", func(t *testing.T) {
		cfg := testConfig("http://localhost:8002")
		cfg.CompanyBaseURL = "localhost:8003"

		_, err := NewGateway(cfg)
		assert.Error(t, err)
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		cfg := testConfig("http://localhost:8002")
		cfg.Timeout = 0

		_, err := NewGateway(cfg)
		assert.Error(t, err)
	})
}

func TestProductClient_FetchProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("fetches an existing product", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/"+productID.String(), r.URL.Path)
			fmt.Fprintf(w, `{"id":%q,"name":"Widget","price":"12.50"}`, productID)
		}))

		product, err := gateway.FetchProduct(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, "12.5", product.Price.String())
	})

	t.Run("accepts numeric price", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"id":%q,"name":"Widget","price":12.5}`, productID)
		}))

		product, err := gateway.FetchProduct(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, "12.5", product.Price.String())
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := gateway.FetchProduct(context.Background(), productID)
		assert.ErrorIs(t, err, remote.ErrNotFound)
	})

	t.Run("maps 500 to ErrUnavailable", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := gateway.FetchProduct(context.Background(), productID)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})

	t.Run("maps malformed payload to ErrUnavailable", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": not json`)
		}))

		_, err := gateway.FetchProduct(context.Background(), productID)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})

	t.Run("maps timeout to ErrUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(server.Close)

		cfg := testConfig(server.URL)
		cfg.Timeout = 50 * time.Millisecond
		gateway, err := NewGateway(cfg)
		require.NoError(t, err)

		_, err = gateway.FetchProduct(context.Background(), productID)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})

	t.Run("maps unreachable host to ErrUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		gateway, err := NewGateway(testConfig(url))
		require.NoError(t, err)

		_, err = gateway.FetchProduct(context.Background(), productID)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})
}

func TestProductClient_FetchProductsBatch(t *testing.T) {
	t.Run("returns empty map for no ids", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		products, err := gateway.FetchProductsBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("leaves missing products out of the result", func(t *testing.T) {
		knownID := uuid.New()
		missingID := uuid.New()

		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/products/"+knownID.String() {
				fmt.Fprintf(w, `{"id":%q,"name":"Widget","price":"10.00"}`, knownID)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))

		products, err := gateway.FetchProductsBatch(context.Background(), []uuid.UUID{knownID, missingID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[knownID].Name)
		_, ok := products[missingID]
		assert.False(t, ok)
	})

	t.Run("dedupes repeated ids", func(t *testing.T) {
		productID := uuid.New()
		var requests atomic.Int32

		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			fmt.Fprintf(w, `{"id":%q,"name":"Widget","price":"10.00"}`, productID)
		}))

		products, err := gateway.FetchProductsBatch(context.Background(),
			[]uuid.UUID{productID, productID, productID})
		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("fails when every fetch is unavailable", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		_, err := gateway.FetchProductsBatch(context.Background(),
			[]uuid.UUID{uuid.New(), uuid.New()})
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})

	t.Run("partial outage returns the partial map and ErrUnavailable", func(t *testing.T) {
		healthyID := uuid.New()
		brokenID := uuid.New()

		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/products/"+healthyID.String() {
				fmt.Fprintf(w, `{"id":%q,"name":"Widget","price":"10.00"}`, healthyID)
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		// The 503-ed id must not look like a missing product, so the batch
		// still reports ErrUnavailable next to the resolved entries.
		products, err := gateway.FetchProductsBatch(context.Background(),
			[]uuid.UUID{healthyID, brokenID})
		assert.ErrorIs(t, err, remote.ErrUnavailable)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[healthyID].Name)
	})
}

func TestCompanyClient_FetchCompany(t *testing.T) {
	companyID := uuid.New()

	t.Run("fetches an existing company", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/companies/"+companyID.String(), r.URL.Path)
			fmt.Fprintf(w, `{
				"id": %q,
				"companyName": "Acme d.o.o.",
				"street": "Main 1",
				"postalCode": "1000",
				"city": "Ljubljana",
				"iban": "SI56000000000000000",
				"registrationNumber": "1234567000",
				"vatPayer": true,
				"vatId": "SI12345678"
			}`, companyID)
		}))

		company, err := gateway.FetchCompany(context.Background(), companyID)
		require.NoError(t, err)
		assert.Equal(t, companyID, company.ID)
		assert.Equal(t, "Acme d.o.o.", company.Name)
		assert.Equal(t, "Ljubljana", company.City)
		assert.True(t, company.VATPayer)
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := gateway.FetchCompany(context.Background(), companyID)
		assert.ErrorIs(t, err, remote.ErrNotFound)
	})

	t.Run("maps outage to ErrUnavailable", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := gateway.FetchCompany(context.Background(), companyID)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})
}

func TestPartnerClient_FetchPartner(t *testing.T) {
	partnerID := uuid.New()

	t.Run("fetches an existing partner", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/partners/"+partnerID.String(), r.URL.Path)
			fmt.Fprintf(w, `{
				"id": %q,
				"name": "Stranka d.o.o.",
				"street": "Side 2",
				"city": "Maribor",
				"postalCode": "2000",
				"vatLiable": true,
				"taxNumber": "87654321",
				"email": "billing@stranka.example",
				"phone": "+386 1 234 5678"
			}`, partnerID)
		}))

		partner, err := gateway.FetchPartner(context.Background(), partnerID)
		require.NoError(t, err)
		assert.Equal(t, partnerID, partner.ID)
		assert.Equal(t, "Stranka d.o.o.", partner.Name)
		assert.Equal(t, "87654321", partner.TaxNumber)
	})

	t.Run("maps 404 to ErrNotFound", func(t *testing.T) {
		gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := gateway.FetchPartner(context.Background(), partnerID)
		assert.ErrorIs(t, err, remote.ErrNotFound)
	})
}
