package app

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Menu numbers the operations from 1 and adds Exit as the last item.
type Menu struct {
	eng *Engine
	con *Console
	ops []Operation
}

func NewMenu(eng *Engine, con *Console, ops []Operation) *Menu {
	return &Menu{eng: eng, con: con, ops: ops}
}

func (m *Menu) exitChoice() int { return len(m.ops) + 1 }

func (m *Menu) print() {
	m.con.Println("MAIN MENU")
	m.con.Println("---------")
	for i, op := range m.ops {
		m.con.Printf("%d. %s\n", i+1, op.Title)
	}
	m.con.Printf("%d. < EXIT\n", m.exitChoice())
}

// readChoice re-prompts until it reads an integer.
func (m *Menu) readChoice(ctx context.Context) (int, error) {
	for {
		m.con.Printf("Please make your choice: ")
		in, err := m.con.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(in))
		if err == nil {
			return n, nil
		}
		m.con.Println("Your input is invalid!")
	}
}

// Run loops until Exit is chosen, input ends, or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.print()
		choice, err := m.readChoice(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == m.exitChoice() {
			return nil
		}
		if choice < 1 || choice > len(m.ops) {
			m.con.Println("Unrecognized choice!")
			continue
		}
		if err := m.eng.Run(ctx, m.ops[choice-1]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
