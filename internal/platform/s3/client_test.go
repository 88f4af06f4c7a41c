package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       DefaultRegion,
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return &Client{s3: client, region: DefaultRegion}
}

// xmlResponse writes an S3-style XML response.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func errorBody(code, message string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>%s</Code>
  <Message>%s</Message>
</Error>`, code, message)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		endpoint   string
		opts       []Option
		wantRegion string
	}{
		{
			name:       "default region",
			endpoint:   "https://objects.example.com",
			wantRegion: DefaultRegion,
		},
		{
			name:       "custom region and path style",
			endpoint:   "http://minio.lab:9000",
			opts:       []Option{WithRegion("eu-central-1"), WithPathStyle(true)},
			wantRegion: "eu-central-1",
		},
		{
			name:       "no endpoint",
			wantRegion: DefaultRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewClient(tt.endpoint, "access", "secret", tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.region != tt.wantRegion {
				t.Errorf("expected region %s, got %s", tt.wantRegion, client.region)
			}
		})
	}
}

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{uri: "s3://ledgers/dc_entries.yaml", bucket: "ledgers", key: "dc_entries.yaml"},
		{uri: "s3://ledgers/runs/2026/dc.yaml", bucket: "ledgers", key: "runs/2026/dc.yaml"},
		{uri: "s3://ledgers", bucket: "ledgers", key: ""},
		{uri: "https://ledgers/dc.yaml", wantErr: true},
		{uri: "s3:///dc.yaml", wantErr: true},
		{uri: "/tmp/dc.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			t.Parallel()
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tt.bucket || key != tt.key {
				t.Errorf("ParseURI(%q) = %q, %q; want %q, %q", tt.uri, bucket, key, tt.bucket, tt.key)
			}
		})
	}
}

func TestURI(t *testing.T) {
	t.Parallel()
	if got := URI("ledgers", "a/b.yaml"); got != "s3://ledgers/a/b.yaml" {
		t.Errorf("URI() = %q", got)
	}
}

func TestCreateBucket_Success(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			xmlResponse(w, 200, `<?xml version="1.0" encoding="UTF-8"?><CreateBucketResult/>`)
			return
		}
		xmlResponse(w, 404, "")
	}))

	if err := client.CreateBucket(context.Background(), "ledgers"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateBucket_AlreadyOwnedByYou(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 409, errorBody("BucketAlreadyOwnedByYou", "you already own it"))
	}))

	if err := client.CreateBucket(context.Background(), "ledgers"); err != nil {
		t.Fatalf("expected nil error for already owned bucket, got: %v", err)
	}
}

func TestCreateBucket_Error(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 403, errorBody("AccessDenied", "Access Denied"))
	}))

	err := client.CreateBucket(context.Background(), "ledgers")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to create bucket ledgers") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestBucketExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr bool
	}{
		{name: "exists", status: 200, want: true},
		{name: "missing", status: 404, body: errorBody("NotFound", "Not Found")},
		{name: "denied", status: 403, body: errorBody("AccessDenied", "Access Denied"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				xmlResponse(w, tt.status, tt.body)
			}))

			exists, err := client.BucketExists(context.Background(), "ledgers")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				if !strings.Contains(err.Error(), "failed to check bucket ledgers") {
					t.Errorf("unexpected error message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exists != tt.want {
				t.Errorf("BucketExists() = %v, want %v", exists, tt.want)
			}
		})
	}
}

func TestPutObject_Success(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		captured []byte
		path     string
	)
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(404)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		captured = body
		path = r.URL.Path
		mu.Unlock()
		w.WriteHeader(200)
	}))

	data := []byte("order:\n- Zone\n")
	if err := client.PutObject(context.Background(), "ledgers", "dc_entries.yaml", data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !bytes.Equal(captured, data) {
		t.Errorf("expected body %q, got %q", data, captured)
	}
	if path != "/ledgers/dc_entries.yaml" {
		t.Errorf("expected path-style request, got %s", path)
	}
}

func TestPutObject_Error(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 400, errorBody("InvalidArgument", "bad request"))
	}))

	err := client.PutObject(context.Background(), "ledgers", "k.yaml", []byte("data"))
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to put object k.yaml in bucket ledgers") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGetObject_Success(t *testing.T) {
	t.Parallel()

	expected := []byte("version: 1\n")
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(expected)))
		w.WriteHeader(200)
		_, _ = w.Write(expected)
	}))

	data, err := client.GetObject(context.Background(), "ledgers", "k.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, expected) {
		t.Errorf("expected %q, got %q", expected, data)
	}
}

func TestGetObject_NotFound(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 404, errorBody("NoSuchKey", "The specified key does not exist."))
	}))

	_, err := client.GetObject(context.Background(), "ledgers", "missing.yaml")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "s3://ledgers/missing.yaml") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGetObject_Error(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 403, errorBody("AccessDenied", "Access Denied"))
	}))

	_, err := client.GetObject(context.Background(), "ledgers", "k.yaml")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if errors.Is(err, ErrObjectNotFound) {
		t.Fatal("access denied must not be reported as not found")
	}
	if !strings.Contains(err.Error(), "failed to get object k.yaml from bucket ledgers") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"wrapped BucketAlreadyOwnedByYou", fmt.Errorf("outer: %w", &s3types.BucketAlreadyOwnedByYou{}), true},
		{"wrapped BucketAlreadyExists", fmt.Errorf("outer: %w", &s3types.BucketAlreadyExists{}), true},
		{"generic error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isBucketAlreadyOwnedByYou(tt.err); got != tt.want {
				t.Errorf("isBucketAlreadyOwnedByYou() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"wrapped NoSuchBucket", fmt.Errorf("outer: %w", &s3types.NoSuchBucket{}), true},
		{"wrapped NoSuchKey", fmt.Errorf("outer: %w", &s3types.NoSuchKey{}), true},
		{"wrapped NotFound", fmt.Errorf("outer: %w", &s3types.NotFound{}), true},
		{"generic error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}
