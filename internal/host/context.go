package host

import "samplehost/internal/domain"

// Context is the activation context handed to participants.
type Context struct {
	commands domain.CommandRegistry
	session  domain.Session
}

func NewContext(commands *CommandTable, session *Session) *Context {
	return &Context{commands: commands, session: session}
}

func (c *Context) Commands() domain.CommandRegistry {
	return c.commands
}

func (c *Context) Session() domain.Session {
	return c.session
}

var _ domain.Host = (*Context)(nil)
