package export

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

type browserNavigator struct {
	open func(url string) error
	log  logrus.FieldLogger
}

// NewBrowserNavigator opens URLs in the system browser.
func NewBrowserNavigator(log logrus.FieldLogger) ports.Navigator {
	return &browserNavigator{open: browser.OpenURL, log: log}
}

func (n *browserNavigator) Navigate(url string) error {
	n.log.WithField("url", url).Info("opening browser")
	if err := n.open(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
