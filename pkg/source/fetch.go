package source

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strings"

	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
)

const (
	defaultUserAgent = "resume-agent/1.0"
	defaultUserField = "username"
	defaultPassField = "password"
)

var errNoInput = errors.New("no input: give a file, a URL or stdin")

// fetchURL retrieves req.URL, logging in first when a login form is
// configured, and converts the body to text.
func fetchURL(ctx context.Context, req Request) (text string, err error) {
	var jar *cookiejar.Jar
	jar, err = cookiejar.New(nil)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, err)
		return text, err
	}

	client := &http.Client{
		Jar:     jar,
		Timeout: req.Timeout,
	}

	hasCreds := req.Auth.User != "" && req.Auth.Password != ""
	if req.Login.URL != "" && hasCreds {
		err = formLogin(ctx, client, req)
		if err != nil {
			err = resume.NewError(resume.ErrInputRead, "login", req.Login.URL, err)
			return text, err
		}
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, errors.Wrap(err, "failed to create HTTP request"))
		return text, err
	}
	httpReq.Header.Set("User-Agent", userAgent(req))
	if hasCreds && req.Login.URL == "" {
		httpReq.SetBasicAuth(req.Auth.User, req.Auth.Password)
	}

	logger.Ctx(ctx).Debug().Str("url", req.URL).Bool("basic_auth", hasCreds && req.Login.URL == "").Msg("fetching input")

	var resp *http.Response
	resp, err = client.Do(httpReq)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, errors.Wrap(err, "HTTP request failed"))
		return text, err
	}
	defer resp.Body.Close()

	err = checkStatus(resp)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, err)
		return text, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, errors.Wrap(err, "failed to read response body"))
		return text, err
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType := inferMIME(req.URL, contentType)
	if contentType == "" {
		contentType = mediaType
	}

	text, err = extractBytes(req.URL, body, mediaType, contentType)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "fetch url", req.URL, err)
		return text, err
	}

	return text, err
}

// formLogin posts the credentials and extra fields to the login URL. The
// session cookies end up in the client's jar.
func formLogin(ctx context.Context, client *http.Client, req Request) (err error) {
	userField := req.Login.UserField
	if userField == "" {
		userField = defaultUserField
	}
	passField := req.Login.PassField
	if passField == "" {
		passField = defaultPassField
	}

	form := url.Values{}
	form.Set(userField, req.Auth.User)
	form.Set(passField, req.Auth.Password)
	for key, value := range req.Login.Extra {
		form.Set(key, value)
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, req.Login.URL, strings.NewReader(form.Encode()))
	if err != nil {
		err = errors.Wrap(err, "failed to create login request")
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", userAgent(req))

	// Credentials are never logged.
	logger.Ctx(ctx).Debug().Str("login_url", req.Login.URL).Msg("performing form login")

	var resp *http.Response
	resp, err = client.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "login request failed")
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	err = checkStatus(resp)
	return err
}

func checkStatus(resp *http.Response) (err error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return err
	}
	return err
}

func userAgent(req Request) (agent string) {
	agent = req.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	return agent
}

// inferMIME returns the media type from the Content-Type header, falling
// back to the URL path extension and then text/plain.
func inferMIME(rawURL, contentType string) (mediaType string) {
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			return strings.ToLower(parsed)
		}
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
		if mediaType != "" {
			return mediaType
		}
	}

	ext := ""
	parsedURL, err := url.Parse(rawURL)
	if err == nil {
		ext = path.Ext(parsedURL.Path)
	}
	if ext != "" {
		byExt := mime.TypeByExtension(strings.ToLower(ext))
		if byExt != "" {
			mediaType, _, err = mime.ParseMediaType(byExt)
			if err == nil {
				return mediaType
			}
		}
	}

	mediaType = "text/plain"
	return mediaType
}
