package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/intake/pkg/app"
	tuiapp "tableflip.dev/intake/pkg/tui/app"
)

type UI struct {
	Service *app.Service

	// Link is an optional deep link opened right after the dashboard
	// loads.
	Link string

	Log *zap.Logger
}

func (n *UI) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not run ui, no service")
	}
	if n.Log != nil {
		n.Log.Info("starting dashboard", zap.String("link", n.Link))
	}
	err := tuiapp.Run(n.Service, n.Link, n.Log)
	if n.Log != nil {
		if err != nil {
			n.Log.Error("dashboard exited", zap.Error(err))
		} else {
			n.Log.Info("dashboard closed")
		}
	}
	return err
}
