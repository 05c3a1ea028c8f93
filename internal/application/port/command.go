package port

type CommandKind int

const (
	CmdRefresh CommandKind = iota
	CmdSearch
	CmdSelect
	CmdSelectRow
	CmdNextPage
	CmdPrevPage
	CmdQuit
)

// Command is one user action from the display surface.
type Command struct {
	Kind CommandKind
	Arg  string // search term, currency code
	Row  int    // 1-based row on the current page, for CmdSelectRow
}
