package analytics

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Script describes a third-party analytics tag (Plausible, Umami and the
// like) embedded in the document head.
type Script struct {
	Src    string // script URL
	SiteID string // value of the data attribute identifying the site
	Attr   string // data attribute name, default "data-domain"
}

// Enabled reports whether a usable script URL is configured.
func (s Script) Enabled() bool {
	if s.Src == "" {
		return false
	}
	if strings.HasPrefix(s.Src, "/") && !strings.HasPrefix(s.Src, "//") {
		return true
	}
	u, err := url.Parse(s.Src)
	return err == nil && u.Scheme == "https" && u.Host != ""
}

// Tag renders the <script> element, or nothing when the script is disabled.
func (s Script) Tag() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !s.Enabled() {
			return nil
		}
		attr := s.Attr
		if attr == "" {
			attr = "data-domain"
		}
		var err error
		if s.SiteID != "" {
			_, err = fmt.Fprintf(w, `<script defer %s="%s" src="%s"></script>`,
				templ.EscapeString(attr), templ.EscapeString(s.SiteID), templ.EscapeString(s.Src))
		} else {
			_, err = fmt.Fprintf(w, `<script defer src="%s"></script>`, templ.EscapeString(s.Src))
		}
		return err
	})
}

// Origin returns the scheme and host of the script, for the CSP allow-list.
func (s Script) Origin() string {
	u, err := url.Parse(s.Src)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
