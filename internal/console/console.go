// Package console is the operator's interactive view of a running relay.
// It reads the directory and follows registry changes, but never touches
// the registry itself.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andy6609/jim-relay-server/internal/chat"
	"github.com/andy6609/jim-relay-server/internal/directory"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	title  = color.New(color.FgGreen, color.OpBold)
	notice = color.New(color.FgYellow)
	fault  = color.New(color.FgRed)
)

type Console struct {
	dir     directory.Inspector
	changes <-chan chat.RegistryChange
	in      io.Reader
	out     io.Writer
}

// New builds a console. changes may be nil when no live feed is wanted.
func New(dir directory.Inspector, changes <-chan chat.RegistryChange, in io.Reader, out io.Writer) *Console {
	return &Console{dir: dir, changes: changes, in: in, out: out}
}

// Run serves commands until "exit", end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		readErr <- sc.Err()
	}()

	c.help()
	changes := c.changes
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case ch, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			c.change(ch)
		case line := <-lines:
			if !c.execute(line) {
				return nil
			}
		}
	}
}

// execute runs one command line and reports whether to keep going.
func (c *Console) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	var err error
	switch fields[0] {
	case "help":
		c.help()
	case "exit":
		return false
	case "users":
		err = c.users()
	case "connected":
		err = c.connected()
	case "loghist":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		err = c.loginHistory(name)
	case "stats":
		err = c.stats()
	default:
		fmt.Fprintln(c.out, fault.Render("unknown command: "+fields[0]))
	}
	if err != nil {
		fmt.Fprintln(c.out, fault.Render("error: "+err.Error()))
	}
	return true
}

func (c *Console) help() {
	fmt.Fprintln(c.out, title.Render("Commands"))
	t := c.table("command", "description")
	t.AppendBulk([][]string{
		{"users", "all known accounts"},
		{"connected", "accounts logged in right now"},
		{"loghist [name]", "login history, everyone when no name is given"},
		{"stats", "messages sent and accepted per account"},
		{"help", "this list"},
		{"exit", "stop the server"},
	})
	t.Render()
}

func (c *Console) users() error {
	users, err := c.dir.Users()
	if err != nil {
		return err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	fmt.Fprintln(c.out, title.Render("Users"))
	t := c.table("name", "last login")
	t.AppendBulk(lo.Map(users, func(u directory.User, _ int) []string {
		return []string{u.Name, u.LastLogin.Format(timeLayout)}
	}))
	t.Render()
	return nil
}

func (c *Console) connected() error {
	active, err := c.dir.ActiveUsers()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Fprintln(c.out, notice.Render("no active users"))
		return nil
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })

	fmt.Fprintln(c.out, title.Render("Connected"))
	t := c.table("name", "address", "connected at")
	t.AppendBulk(lo.Map(active, func(a directory.ActiveUser, _ int) []string {
		return []string{a.Name, endpoint(a.IP, a.Port), a.LoginTime.Format(timeLayout)}
	}))
	t.Render()
	return nil
}

func (c *Console) loginHistory(name string) error {
	history, err := c.dir.LoginHistory(name)
	if err != nil {
		return err
	}
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Name != history[j].Name {
			return history[i].Name < history[j].Name
		}
		return history[i].At.Before(history[j].At)
	})

	fmt.Fprintln(c.out, title.Render("Login history"))
	t := c.table("name", "logged in at", "from")
	t.AppendBulk(lo.Map(history, func(r directory.LoginRecord, _ int) []string {
		return []string{r.Name, r.At.Format(timeLayout), endpoint(r.IP, r.Port)}
	}))
	t.Render()
	return nil
}

func (c *Console) stats() error {
	stats, err := c.dir.MessageStats()
	if err != nil {
		return err
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })

	fmt.Fprintln(c.out, title.Render("Message statistics"))
	t := c.table("name", "last login", "sent", "accepted")
	t.AppendBulk(lo.Map(stats, func(s directory.MessageStats, _ int) []string {
		return []string{s.Name, s.LastLogin.Format(timeLayout), strconv.Itoa(s.Sent), strconv.Itoa(s.Accepted)}
	}))
	t.Render()
	return nil
}

func (c *Console) change(ch chat.RegistryChange) {
	fmt.Fprintln(c.out, notice.Render(fmt.Sprintf("[%s] %s %s (%d active)",
		time.Now().Format("15:04:05"), ch.Name, ch.Kind, ch.Active)))
}

func (c *Console) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(c.out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetBorder(false)
	t.SetTablePadding("\t")
	return t
}

func endpoint(ip string, port int) string {
	return ip + ":" + strconv.Itoa(port)
}
