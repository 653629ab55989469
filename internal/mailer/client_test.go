package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactParams(t *testing.T) {
	got := ContactParams(ContactForm{Name: " Ada ", Email: "ada@example.com", Message: "<b>Hello</b> & welcome"})
	assert.Equal(t, map[string]string{
		"request_type": "General Inquiry",
		"from_name":    "Ada",
		"from_email":   "ada@example.com",
		"message":      "Hello & welcome",
		"company_name": "N/A",
		"company_size": "N/A",
		"country":      "N/A",
		"interest":     "N/A",
		"to_name":      "Creotizant Team",
	}, got)
}

func TestDemoParams(t *testing.T) {
	got := DemoParams(DemoForm{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		CompanyName: "Analytical Ltd",
		CompanySize: "51-200",
		Country:     "United Kingdom",
		Interest:    "Talent Acquisition",
	})
	assert.Equal(t, "Demo Request", got["request_type"])
	assert.Equal(t, "Ada Lovelace", got["from_name"])
	assert.Equal(t, "Demo Request for: Talent Acquisition", got["message"])
	assert.Equal(t, "Creotizant Sales Team", got["to_name"])
	assert.Equal(t, "51-200", got["company_size"])
}

func TestSendPostsTemplateParams(t *testing.T) {
	var (
		gotPath string
		gotBody sendPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", PrivateKey: "priv"}, nil)
	c.newID = func() string { return "01TEST" }
	rec, err := c.SendContact(context.Background(), ContactForm{Name: "Ada", Email: "a@b.c", Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, Receipt{ID: "01TEST", Kind: KindContact}, rec)
	assert.Equal(t, "/api/v1.0/email/send", gotPath)
	assert.Equal(t, "svc", gotBody.ServiceID)
	assert.Equal(t, "tpl", gotBody.TemplateID)
	assert.Equal(t, "pub", gotBody.UserID)
	assert.Equal(t, "priv", gotBody.AccessToken)
	assert.Equal(t, "General Inquiry", gotBody.TemplateParams["request_type"])
}

func TestSendSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, ServiceID: "svc", TemplateID: "bad"}, nil)
	_, err := c.SendDemo(context.Background(), DemoForm{FirstName: "A"})
	require.Error(t, err)

	var derr *DeliveryError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, http.StatusBadRequest, derr.Status)
	assert.Equal(t, "The template ID is invalid", derr.Body)
}

func TestSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, ServiceID: "svc", TemplateID: "tpl"}, nil)
	_, err := c.SendContact(context.Background(), ContactForm{})
	assert.Error(t, err)
}

func TestUnconfiguredClientSimulates(t *testing.T) {
	c := NewClient(Config{}, nil)
	assert.False(t, c.Configured())

	rec, err := c.SendContact(context.Background(), ContactForm{Name: "Ada"})
	require.NoError(t, err)
	assert.True(t, rec.Simulate)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, KindContact, rec.Kind)
}
