package review

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spendlens/receiptscan/internal/draft"
	"github.com/spendlens/receiptscan/internal/pipeline"
	"github.com/spendlens/receiptscan/internal/preprocess"
)

func multipartUpload(filename, contentType string, data []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	req := httptest.NewRequest("POST", "/api/drafts", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var _ = Describe("Server", func() {
	var (
		store   *mockStore
		storage *mockStorage
		scanner *mockScanner
		server  *Server
		rec     *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		store = newMockStore()
		storage = newMockStorage()
		amount := decimal.NewFromInt(450)
		scanner = &mockScanner{
			draft: &draft.TransactionDraft{
				Amount:          &amount,
				Date:            "2025-11-15",
				Merchant:        "STARBUCKS COFFEE",
				Category:        "Food & Dining",
				Type:            "expense",
				ConfidenceScore: 85,
				ConfidenceTier:  draft.TierHigh,
			},
		}
		service := NewServiceWithDeps(store, storage, scanner,
			&fixedIDGenerator{id: "test-id-123"},
			&fixedTimeSource{t: time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)},
		)
		server = NewServerWithMux(service, BasicAuth{}, http.NewServeMux())
		rec = httptest.NewRecorder()
	})

	uploadSample := func() {
		GinkgoHelper()
		_, err := server.service.ProcessUpload(context.Background(), "receipt.jpg", []byte("image data"), "image/jpeg")
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("POST /api/drafts", func() {
		It("returns the pending draft with 201", func() {
			server.ServeHTTP(rec, multipartUpload("receipt.jpg", "image/jpeg", []byte("image data")))

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var record Record
			Expect(json.Unmarshal(rec.Body.Bytes(), &record)).To(Succeed())
			Expect(record.ID).To(Equal("test-id-123"))
			Expect(record.Status).To(Equal(StatusPending))
			Expect(record.Draft.Merchant).To(Equal("STARBUCKS COFFEE"))
		})

		It("returns 415 when the upload is not an image", func() {
			scanner.err = preprocess.ErrNotImage
			server.ServeHTTP(rec, multipartUpload("notes.txt", "text/plain", []byte("plain text")))

			Expect(rec.Code).To(Equal(http.StatusUnsupportedMediaType))
		})

		It("returns 422 when recognition fails", func() {
			scanner.err = pipeline.ErrRecognition
			server.ServeHTTP(rec, multipartUpload("receipt.jpg", "image/jpeg", []byte("image data")))

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			var body map[string]string
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["error"]).To(Equal("failed to process receipt, please try a clearer image"))
		})

		It("returns 400 when no file field is present", func() {
			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			Expect(writer.Close()).To(Succeed())
			req := httptest.NewRequest("POST", "/api/drafts", &body)
			req.Header.Set("Content-Type", writer.FormDataContentType())

			server.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/drafts", func() {
		It("returns an empty JSON array when there are no drafts", func() {
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(rec.Body.String())).To(Equal("[]"))
		})

		It("returns all drafts", func() {
			uploadSample()
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var records []Record
			Expect(json.Unmarshal(rec.Body.Bytes(), &records)).To(Succeed())
			Expect(records).To(HaveLen(1))
		})
	})

	Describe("GET /api/drafts/{id}", func() {
		It("returns the record", func() {
			uploadSample()
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts/test-id-123", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var record Record
			Expect(json.Unmarshal(rec.Body.Bytes(), &record)).To(Succeed())
			Expect(record.ID).To(Equal("test-id-123"))
		})

		It("returns 404 for an unknown ID", func() {
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts/missing", nil))
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/drafts/{id}/image", func() {
		It("returns the stored image bytes", func() {
			uploadSample()
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts/test-id-123/image", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("image/jpeg"))
			Expect(rec.Body.Bytes()).To(Equal([]byte("image data")))
		})
	})

	Describe("PATCH /api/drafts/{id}", func() {
		It("applies the edits", func() {
			uploadSample()
			body := strings.NewReader(`{"merchant":"Starbucks, Indiranagar","type":"expense"}`)
			server.ServeHTTP(rec, httptest.NewRequest("PATCH", "/api/drafts/test-id-123", body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var record Record
			Expect(json.Unmarshal(rec.Body.Bytes(), &record)).To(Succeed())
			Expect(record.Draft.Merchant).To(Equal("Starbucks, Indiranagar"))
		})

		It("rejects a malformed body", func() {
			uploadSample()
			body := strings.NewReader(`{not json`)
			server.ServeHTTP(rec, httptest.NewRequest("PATCH", "/api/drafts/test-id-123", body))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an invalid date", func() {
			uploadSample()
			body := strings.NewReader(`{"date":"15/11/2025"}`)
			server.ServeHTTP(rec, httptest.NewRequest("PATCH", "/api/drafts/test-id-123", body))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/drafts/{id}/confirm", func() {
		It("confirms the draft", func() {
			uploadSample()
			server.ServeHTTP(rec, httptest.NewRequest("POST", "/api/drafts/test-id-123/confirm", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var record Record
			Expect(json.Unmarshal(rec.Body.Bytes(), &record)).To(Succeed())
			Expect(record.Status).To(Equal(StatusConfirmed))
		})

		It("rejects confirming twice", func() {
			uploadSample()
			server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/drafts/test-id-123/confirm", nil))
			server.ServeHTTP(rec, httptest.NewRequest("POST", "/api/drafts/test-id-123/confirm", nil))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /api/drafts/{id}", func() {
		It("deletes the draft and returns 204", func() {
			uploadSample()
			server.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/drafts/test-id-123", nil))

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(store.records).To(BeEmpty())
		})

		It("returns 500 when the draft does not exist", func() {
			server.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/drafts/missing", nil))
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	When("basic auth is configured", func() {
		BeforeEach(func() {
			service := NewServiceWithDeps(store, storage, scanner,
				&fixedIDGenerator{id: "test-id-123"},
				&fixedTimeSource{t: time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)},
			)
			server = NewServerWithMux(service, BasicAuth{Username: "admin", Password: "secret"}, http.NewServeMux())
		})

		It("rejects requests without credentials", func() {
			server.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drafts", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
		})

		It("rejects wrong credentials", func() {
			req := httptest.NewRequest("GET", "/api/drafts", nil)
			req.SetBasicAuth("admin", "wrong")
			server.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("accepts correct credentials", func() {
			req := httptest.NewRequest("GET", "/api/drafts", nil)
			req.SetBasicAuth("admin", "secret")
			server.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
