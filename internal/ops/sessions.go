package ops

import (
	"fmt"
	"strings"

	"mathcli/internal/catalog"
	"mathcli/internal/engine"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func registerSessions(r *catalog.Registry, eng *engine.Engine) {
	cat := catalog.CategorySessions

	guard := func() error {
		if eng.Sessions() == nil {
			return operror.ExecutionError("session management is not available")
		}
		return nil
	}

	r.MustRegister(&catalog.Descriptor{
		Name:     "sessions",
		Category: cat,
		Help:     "List all sessions, marking the active one: sessions",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			list := eng.Sessions().List()
			lines := make([]string, 0, len(list))
			for _, s := range list {
				marker := " "
				if s.Active {
					marker = "*"
				}
				lines = append(lines, fmt.Sprintf("%s %s  %s  (created %s)", marker, s.ID, s.Name, s.CreatedAt.Format("2006-01-02 15:04")))
			}
			return value.Text(strings.Join(lines, "\n")), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "session_new",
		Parameters: []string{"name"},
		Optional:   1,
		Category:   cat,
		Help:       "Create a session and switch to it: session_new experiments",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			name := ""
			if len(args) == 1 {
				var err error
				name, err = value.AsText(args[0], "name")
				if err != nil {
					return value.Unit(), err
				}
			}
			s, err := eng.Sessions().Create(name)
			if err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("created session %s (%s)", s.Name, s.ID)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "session_switch",
		Parameters: []string{"session"},
		Category:   cat,
		Help:       "Switch to a session by id or name: session_switch experiments",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			id, err := value.AsText(args[0], "session")
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Sessions().Switch(id); err != nil {
				return value.Unit(), err
			}
			active := eng.Sessions().Active()
			return value.Text(fmt.Sprintf("switched to session %s (%s)", active.Name, active.ID)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "session_rename",
		Parameters: []string{"session", "name"},
		Category:   cat,
		Help:       "Rename a session: session_rename abc12345 production",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			id, err := value.AsText(args[0], "session")
			if err != nil {
				return value.Unit(), err
			}
			name, err := value.AsText(args[1], "name")
			if err != nil {
				return value.Unit(), err
			}
			if name == "" {
				return value.Unit(), operror.InvalidValue("session name must not be empty")
			}
			if err := eng.Sessions().Rename(id, name); err != nil {
				return value.Unit(), err
			}
			return value.Text(fmt.Sprintf("renamed session to %s", name)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:       "session_delete",
		Parameters: []string{"session"},
		Category:   cat,
		Help:       "Delete a session and its variables: session_delete experiments",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			id, err := value.AsText(args[0], "session")
			if err != nil {
				return value.Unit(), err
			}
			if err := eng.Sessions().Delete(id); err != nil {
				return value.Unit(), err
			}
			active := eng.Sessions().Active()
			return value.Text(fmt.Sprintf("deleted; active session is now %s (%s)", active.Name, active.ID)), nil
		},
	})

	r.MustRegister(&catalog.Descriptor{
		Name:     "session_current",
		Category: cat,
		Help:     "Show the active session: session_current",
		Capability: func(args []value.Value) (value.Value, error) {
			if err := guard(); err != nil {
				return value.Unit(), err
			}
			s := eng.Sessions().Active()
			return value.Text(fmt.Sprintf("%s (%s)", s.Name, s.ID)), nil
		},
	})
}
