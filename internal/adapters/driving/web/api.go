package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// maxAssetSize bounds uploaded images and videos.
const maxAssetSize = 32 << 20

// contactForm is the body of a contact submission.
type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Properties.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleContact accepts a JSON or HTML form submission. Form posts are
// redirected back to the page.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if !s.contact.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorFrame{Code: "rate_limited", Message: "too many messages, try again later"})
		return
	}

	propertyID := r.PathValue("id")
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	var form contactForm
	if isJSON {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&form); err != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
			return
		}
	} else {
		form = contactForm{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Phone:   r.PostFormValue("phone"),
			Message: r.PostFormValue("message"),
		}
	}

	sub, err := s.deps.Submissions.Submit(r.Context(), domain.ContactSubmission{
		PropertyID: propertyID,
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Message:    form.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if !isJSON {
		http.Redirect(w, r, "/p/"+url.PathEscape(propertyID)+"?sent=1#contact", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.deps.Submissions.Submissions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if subs == nil {
		subs = []domain.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// handleUploadAsset stores a multipart "file" field, or the raw body, in
// the blob store. With ?publish=1 the asset is also uploaded to cloud
// storage when an uploader is configured.
func (s *Server) handleUploadAsset(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxAssetSize)
	contentType := r.Header.Get("Content-Type")

	var data []byte
	var err error
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = body
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, ferr))
			return
		}
		defer file.Close()
		contentType = header.Header.Get("Content-Type")
		data, err = io.ReadAll(file)
	} else {
		data, err = io.ReadAll(body)
	}
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if contentType == "" || strings.HasPrefix(contentType, "multipart/") {
		contentType = http.DetectContentType(data)
	}

	ref, err := s.deps.Assets.Store(r.Context(), data, contentType)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("publish") == "1" {
		remote, err := s.deps.Assets.Publish(r.Context(), ref)
		switch {
		case err == nil:
			ref = remote
		case errors.Is(err, domain.ErrNotImplemented):
			logger.Debug("[Server] No uploader configured, keeping %s local", ref)
		default:
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]string{"ref": string(ref), "url": assetURL(ref)})
}

func (s *Server) handleTempAsset(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := s.deps.Assets.Open(r.PathValue("token"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeBlob(w, data, contentType)
}

// handleLocalAsset serves a blob store asset for the time of one request.
func (s *Server) handleLocalAsset(w http.ResponseWriter, r *http.Request) {
	ref := domain.AssetRef(r.PathValue("key"))
	if ref.Kind() != domain.AssetLocal {
		http.NotFound(w, r)
		return
	}

	resolved, err := s.deps.Assets.Resolve(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	defer resolved.Dispose()

	data, contentType, ok := s.deps.Assets.Open(strings.TrimPrefix(resolved.URL(), domain.TempAssetPrefix))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	writeBlob(w, data, contentType)
}

func writeBlob(w http.ResponseWriter, data []byte, contentType string) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("[Server] Failed to write response: %v", err)
	}
}

// writeError writes err as {"code": ..., "message": ...} with a matching status.
func writeError(w http.ResponseWriter, err error) {
	code := errorCode(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, status = "invalid_credentials", http.StatusUnauthorized
	case code == "admin_required":
		status = http.StatusUnauthorized
	case code == "not_found":
		status = http.StatusNotFound
	case code == "invalid_input", code == "bad_request":
		status = http.StatusBadRequest
	case code == "permission":
		status = http.StatusForbidden
	case code == "network", code == "external_service":
		status = http.StatusBadGateway
	case code == "not_implemented":
		status = http.StatusNotImplemented
	case code == "session_closed":
		status = http.StatusConflict
	default:
		logger.Error("[Server] %v", err)
	}
	writeJSON(w, status, errorFrame{Code: code, Message: err.Error()})
}
