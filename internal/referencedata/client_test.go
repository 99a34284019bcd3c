package referencedata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestClientFacilityRequest(t *testing.T) {
	facilityID := uuid.MustParse("aaf12a5a-8b16-11e1-8000-000000000001")
	const expectedURL = "http://referencedata.test/api/facilities/aaf12a5a-8b16-11e1-8000-000000000001"
	respBody := `{"id":"aaf12a5a-8b16-11e1-8000-000000000001","code":"HC01","name":"Comfort Health Clinic"}`

	var capturedURL string
	var capturedHeaders http.Header

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://referencedata.test/", WithHTTPClient(&http.Client{Transport: rt}), WithAuthToken("service-token"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	facility, err := client.Facility(context.Background(), facilityID)
	if err != nil {
		t.Fatalf("fetch facility: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("Authorization") != "Bearer service-token" {
		t.Fatalf("auth header missing")
	}
	if facility == nil || facility.Code != "HC01" || facility.Name != "Comfort Health Clinic" {
		t.Fatalf("unexpected facility %+v", facility)
	}
}

func TestClientMissingResourceReturnsNil(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{"message":"not found"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://referencedata.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	orderable, err := client.Orderable(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("fetch orderable: %v", err)
	}
	if orderable != nil {
		t.Fatalf("expected nil orderable, got %+v", orderable)
	}
}

func TestClientServerErrorIsSurfaced(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://referencedata.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.ProcessingPeriod(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestClientProcessingPeriodDates(t *testing.T) {
	periodID := uuid.MustParse("aaf12a5a-8b16-11e1-8000-000000000002")
	respBody := `{"id":"aaf12a5a-8b16-11e1-8000-000000000002","name":"Jan2026","startDate":"2026-01-01","endDate":"2026-01-31"}`

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://referencedata.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	period, err := client.ProcessingPeriod(context.Background(), periodID)
	if err != nil {
		t.Fatalf("fetch period: %v", err)
	}
	wantStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !period.StartDate.Equal(wantStart) {
		t.Fatalf("unexpected start date %v", period.StartDate)
	}
	if period.EndDate.Day() != 31 {
		t.Fatalf("unexpected end date %v", period.EndDate)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected error for blank base URL")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
