package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Medium.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized daybook storage at: %s\n", ctx.Medium.GetConfigPath())
	return nil
}
