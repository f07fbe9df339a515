package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(migrate, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(newCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(status, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(validate, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
