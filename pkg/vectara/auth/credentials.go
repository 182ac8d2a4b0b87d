package auth

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// tokenPath is appended to an auth URL that names only the auth domain.
const tokenPath = "/oauth2/token"

// Credentials identify an application client of the platform.
type Credentials struct {
	ClientID     string
	ClientSecret string

	// AuthURL is either the auth domain (https://vectara-prod-1234.auth.us-west-2.amazoncognito.com)
	// or the full token endpoint.
	AuthURL string
}

// Validate checks that every field is set and AuthURL is an absolute http(s)
// URL.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.ClientSecret, validation.Required),
		validation.Field(&c.AuthURL, validation.Required, validation.By(httpURL)),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https scheme")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// TokenURL returns the token endpoint for the credentials. An AuthURL with no
// path gets the standard token path appended; any other URL is used as is.
func (c Credentials) TokenURL() (string, error) {
	u, err := url.Parse(c.AuthURL)
	if err != nil {
		return "", err
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = tokenPath
	}
	return u.String(), nil
}

// String hides the client secret.
func (c Credentials) String() string {
	return "Credentials{ClientID: " + c.ClientID + ", AuthURL: " + c.AuthURL + "}"
}

func (c Credentials) GoString() string { return c.String() }
