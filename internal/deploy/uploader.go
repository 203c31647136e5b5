package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/library/log"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// RedirectPolicy caps how many 3xx hops an upload follows by re-posting.
type RedirectPolicy struct {
	MaxRedirects int
}

// Uploader posts a file batch to the deploy endpoint as multipart/form-data.
type Uploader struct {
	endpoint string
	client   *http.Client
	policy   RedirectPolicy
	minify   *minifier
	logger   logSDK.Logger
}

// NewUploader builds an uploader. A nil client gets one with settings.Timeout.
//
// The client never follows redirects on its own; the uploader rebuilds the
// body and posts to Location itself.
func NewUploader(settings Settings, client *http.Client, logger logSDK.Logger) *Uploader {
	settings = settings.withDefaults()
	if logger == nil {
		logger = log.Logger.Named("deploy_uploader")
	}

	var c http.Client
	if client != nil {
		c = *client
	} else {
		c.Timeout = settings.Timeout
	}
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	u := &Uploader{
		endpoint: settings.DeployURL(),
		client:   &c,
		policy:   RedirectPolicy{MaxRedirects: settings.MaxRedirects},
		logger:   logger,
	}
	if settings.Minify {
		u.minify = newMinifier()
	}

	return u
}

type uploadSite struct {
	URL   string `json:"url"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

type uploadResponse struct {
	Site   *uploadSite     `json:"site"`
	URL    string          `json:"url"`
	SiteID string          `json:"siteId"`
	Title  string          `json:"title"`
	Error  json.RawMessage `json:"error"`
}

// Upload sends files and reports the deployed site.
//
// A 2xx answer carrying an error field is returned as an unsuccessful Result,
// not as an error. Transport failures return NETWORK_ERROR and non-2xx answers
// return UPLOAD_FAILED.
func (u *Uploader) Upload(ctx context.Context, files []DeployableFile, siteName string) (*Result, error) {
	target := u.endpoint
	for hop := 0; ; hop++ {
		status, header, body, err := u.post(ctx, target, files, siteName)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if isRedirect(status) {
			location := header.Get("Location")
			if location != "" && hop < u.policy.MaxRedirects {
				next, err := resolveLocation(target, location)
				if err != nil {
					return nil, NewUploadFailedError(status, "invalid redirect location "+location)
				}
				u.logger.Info("deploy endpoint redirected, retrying",
					zap.Int("status", status),
					zap.String("location", next))
				target = next
				continue
			}
		}

		if status < 200 || status >= 300 {
			return nil, NewUploadFailedError(status, string(body))
		}

		return parseUploadResponse(status, body, len(files))
	}
}

// post builds a fresh body from disk and sends it once.
func (u *Uploader) post(ctx context.Context, target string, files []DeployableFile, siteName string) (int, http.Header, []byte, error) {
	payload, contentType, err := u.buildBody(files, siteName)
	if err != nil {
		return 0, nil, nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, payload)
	if err != nil {
		return 0, nil, nil, NewError(ErrCodeInvalidArgument, "build request: "+err.Error(), false)
	}
	req.Header.Set("Content-Type", contentType)

	u.logger.Debug("uploading", zap.String("url", target), zap.Int("files", len(files)))
	resp, err := u.client.Do(req)
	if err != nil {
		return 0, nil, nil, NewError(ErrCodeNetwork, "upload request failed: "+err.Error(), true)
	}
	defer resp.Body.Close() // nolint: errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, NewError(ErrCodeNetwork, "read upload response: "+err.Error(), true)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// buildBody encodes files and the guest actor fields as multipart/form-data.
func (u *Uploader) buildBody(files []DeployableFile, siteName string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	if siteName != "" {
		if err := mw.WriteField("siteName", siteName); err != nil {
			return nil, "", errors.Wrap(err, "write siteName")
		}
	}

	for _, f := range files {
		content, err := os.ReadFile(f.AbsolutePath)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", f.RelativePath)
		}
		if u.minify != nil {
			if content, err = u.minify.Bytes(f.MimeType, content); err != nil {
				return nil, "", errors.Wrapf(err, "minify %s", f.RelativePath)
			}
		}

		mimeType := f.MimeType
		if mimeType == "" {
			mimeType = defaultMimeType
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.RelativePath)))
		h.Set("Content-Type", mimeType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "create part %s", f.RelativePath)
		}
		if _, err = part.Write(content); err != nil {
			return nil, "", errors.Wrapf(err, "write part %s", f.RelativePath)
		}
	}

	for _, field := range [][2]string{
		{"userEmail", ""},
		{"userId", ""},
		{"userPlan", "guest"},
		{"currentSiteCount", "0"},
	} {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return nil, "", errors.Wrapf(err, "write %s", field[0])
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}

	return buf, mw.FormDataContentType(), nil
}

func parseUploadResponse(status int, body []byte, fileCount int) (*Result, error) {
	resp := new(uploadResponse)
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, NewUploadFailedError(status, "invalid response body: "+string(body))
	}

	if msg := errorText(resp.Error); msg != "" {
		return &Result{Success: false, Error: msg}, nil
	}

	result := &Result{
		Success:   true,
		URL:       resp.URL,
		SiteID:    resp.SiteID,
		Title:     resp.Title,
		FileCount: fileCount,
	}
	if resp.Site != nil {
		result.URL = firstNonEmpty(resp.Site.URL, result.URL)
		result.SiteID = firstNonEmpty(resp.Site.ID, result.SiteID)
		result.Title = firstNonEmpty(resp.Site.Title, result.Title)
	}
	result.Title = firstNonEmpty(result.Title, DefaultSiteTitle)

	return result, nil
}

// errorText renders a response error field that may be a string or any JSON value.
func errorText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", "false", `""`:
		return ""
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	return trimmed
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

func resolveLocation(base, location string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", errors.WithStack(err)
	}
	next, err := baseURL.Parse(location)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return next.String(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
