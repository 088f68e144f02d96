// Package console implements the navigation and panel collaborators for a
// terminal: instead of switching views they print what the dashboard would do.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/complyview/complyview/internal/domain"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "console")

// Navigator implements domain.Navigator by printing the resolved link.
type Navigator struct {
	out  io.Writer
	base *url.URL
}

// NewNavigator resolves routes against baseURL. An empty baseURL prints the
// route as given.
func NewNavigator(out io.Writer, baseURL string) (*Navigator, error) {
	n := &Navigator{out: out}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
		n.base = u
	}
	return n, nil
}

// Resolve returns the absolute link for target.
func (n *Navigator) Resolve(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing target %q: %w", target, err)
	}
	if n.base == nil {
		return ref.String(), nil
	}
	return n.base.ResolveReference(ref).String(), nil
}

func (n *Navigator) Navigate(target string) error {
	link, err := n.Resolve(target)
	if err != nil {
		return err
	}
	logger.WithField("link", link).Debug("navigate")
	_, err = fmt.Fprintln(n.out, link)
	return err
}

// PanelHost implements domain.PanelHost by printing the panel descriptor.
type PanelHost struct {
	out io.Writer
}

func NewPanelHost(out io.Writer) *PanelHost {
	return &PanelHost{out: out}
}

func (h *PanelHost) Open(panel domain.PanelIntent) error {
	logger.WithField("panel", panel.PanelKind).Debug("open panel")
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", "  ")
	return enc.Encode(panel)
}
