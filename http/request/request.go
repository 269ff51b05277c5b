package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"presetbird/logger"

	"github.com/gabriel-vasile/mimetype"
)

type (
	// Request is one HTTP call. A FileName turns a POST into a multipart
	// upload carrying Fields, otherwise Payload is sent as JSON.
	Request struct {
		Url      string
		Method   string
		FileName string
		Headers  []Headers
		Fields   []Fields
		Payload  interface{}
	}

	Headers struct {
		Key   string
		Value string
	}

	Fields struct {
		Key   string
		Value string
	}
)

func (r *Request) IsPost() bool {
	return r.Method == http.MethodPost
}

func (r *Request) AddHeader(key string, value string) {
	r.Headers = append(r.Headers, Headers{Key: key, Value: value})
}

func (r *Request) body() (io.Reader, error) {
	if r.FileName != "" {
		return r.multipartBody()
	}
	if !r.IsPost() || r.Payload == nil {
		return http.NoBody, nil
	}

	jsonData, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	r.AddHeader("Content-Type", "application/json")
	return bytes.NewReader(jsonData), nil
}

func (r *Request) multipartBody() (io.Reader, error) {
	file, err := os.Open(r.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to get content type: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	reqBody := &bytes.Buffer{}
	writer := multipart.NewWriter(reqBody)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(r.FileName)))
	h.Set("Content-Type", mtype.String())

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	bytesWritten, err := io.Copy(part, file)
	if err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	logger.Debug("Copied bytes to form file", "bytes", bytesWritten, "type", mtype.String())

	for _, field := range r.Fields {
		if err := writer.WriteField(field.Key, field.Value); err != nil {
			return nil, fmt.Errorf("failed to write field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	r.AddHeader("Content-Type", writer.FormDataContentType())
	return reqBody, nil
}

// Call sends the request and decodes the JSON reply into response. A *string
// response receives the raw body, a nil one discards it.
func (r *Request) Call(ctx context.Context, response interface{}) error {
	reqBody, err := r.body()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.Url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}
	for _, header := range r.Headers {
		req.Header.Set(header.Key, header.Value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s failed with status: %s", r.Method, r.Url, resp.Status)
	}

	switch out := response.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, resp.Body)
	case *string:
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		*out = string(bodyBytes)
	default:
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			logger.Error("Failed to decode JSON response", "error", err)
			return fmt.Errorf("failed to decode JSON response: %w", err)
		}
	}
	return nil
}
