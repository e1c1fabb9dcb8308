// Package media implements the hosted media delegate adapter. Image
// binaries are stored and transformed by Cloudinary; the system only
// keeps the returned locator and public id.
package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	defaultTimeout = 30 * time.Second

	// incomingTransformation bounds every stored image to fit within
	// 500x500 without cropping.
	incomingTransformation = "c_limit,h_500,w_500"
)

// Config captures the Cloudinary account settings.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// Cloudinary talks to the Cloudinary upload REST API with signed
// requests.
type Cloudinary struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

func NewCloudinary(cfg Config) *Cloudinary {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Cloudinary{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Result    string `json:"result"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload streams one image to Cloudinary, applying the fit-within
// transformation, and returns its locator and public id.
func (c *Cloudinary) Upload(ctx context.Context, filename string, r io.Reader) (*ports.MediaAsset, error) {
	params := map[string]string{
		"timestamp":      strconv.FormatInt(time.Now().Unix(), 10),
		"folder":         c.cfg.Folder,
		"transformation": incomingTransformation,
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("cloudinary upload: %w", err)
		}
	}
	if err := mw.WriteField("api_key", c.cfg.APIKey); err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if err := mw.WriteField("signature", c.sign(params)); err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("cloudinary upload: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	resp, err := c.post(ctx, "/image/upload", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	locator := resp.SecureURL
	if locator == "" {
		locator = resp.URL
	}
	return &ports.MediaAsset{URL: locator, PublicID: resp.PublicID}, nil
}

// Destroy deletes an asset by public id. An already-deleted asset is not
// an error: destruction is idempotent on the delegate side.
func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"public_id": publicID,
	}

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", c.sign(params))

	resp, err := c.post(ctx, "/image/destroy", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %q: %s", publicID, resp.Result)
	}
	return nil
}

func (c *Cloudinary) post(ctx context.Context, path, contentType string, body io.Reader) (*apiResponse, error) {
	endpoint := c.baseURL + "/" + c.cfg.CloudName + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary request: %w", err)
	}
	defer res.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("cloudinary response: %w", err)
	}
	if res.StatusCode >= 400 {
		msg := parsed.Error.Message
		if msg == "" {
			msg = res.Status
		}
		return nil, fmt.Errorf("cloudinary %s: %s", path, msg)
	}
	return &parsed, nil
}

// sign computes the Cloudinary request signature: the SHA-1 of the
// sorted, ampersand-joined params with the API secret appended. api_key
// and signature itself are excluded by contract.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
