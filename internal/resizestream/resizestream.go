package resizestream

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/term"
)

const defaultInterval = 100 * time.Millisecond

type Receiver interface {
	Resize(w, h int)
}

type Listener struct {
	fd       int
	interval time.Duration
	logger   *log.Logger
	receiver Receiver
}

// New polls the terminal size on the given interval and reports
// changes. An interval of zero or less uses the default.
func New(fd int, interval time.Duration, logger *log.Logger, receiver Receiver) *Listener {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Listener{
		fd:       fd,
		interval: interval,
		logger:   logger,
		receiver: receiver,
	}
}

func (a Listener) Run(ctx context.Context) error {
	var width, height int

	ticker := time.NewTicker(a.interval)

	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return nil
		case <-ticker.C:
			w, h, err := term.GetSize(a.fd)
			if err != nil {
				a.logger.Println(fmt.Errorf("get term size: %w", err))
				continue
			}

			if width == w && height == h {
				continue
			}

			a.receiver.Resize(w, h)

			width = w
			height = h
		}
	}
}
