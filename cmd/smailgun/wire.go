// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/spf13/afero"

	"github.com/lukasdietrich/smailgun/internal/config"
	"github.com/lukasdietrich/smailgun/internal/crypto"
	"github.com/lukasdietrich/smailgun/internal/delivery"
	"github.com/lukasdietrich/smailgun/internal/submission"
)

var wireSet = wire.NewSet(
	wire.Struct(new(sendCommand), "*"),

	crypto.WireSet,
	submission.WireSet,
	delivery.WireSet,
)

func newSendCommand(fs afero.Fs, cfg config.Config) (*sendCommand, error) {
	panic(wire.Build(wireSet))
}
