package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hoteldesk/internal/adapters/observability"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/validate"
)

// CancelWord aborts the current operation when typed at any prompt.
const CancelWord = "cancel"

// Kind selects the validation rule and the bound argument type of a field.
type Kind int

const (
	Number   Kind = iota // digits only, bound as int64
	Positive             // Number > 0
	Date                 // month/day/year, bound as YYYY-MM-DD
	Name                 // letters only, at most 30
	Text                 // anything non-empty, at most 30
	Choice               // one of Field.Choices, bound in canonical spelling
	YesNo                // bound as bool
	Digits               // digits only, bound as text so leading zeros survive
)

// Presence is what a lookup expects of its row count.
type Presence int

const (
	Exists Presence = iota // >= 1
	Absent                 // == 0
	Unique                 // == 1
)

// Check is an existence or uniqueness lookup run through Gateway.Count.
// Args names accepted fields, the one being validated included.
type Check struct {
	Query  string
	Args   []string
	Want   Presence
	Reject func(v Values) string
}

type Field struct {
	Name      string
	Label     string // how messages refer to the field
	Prompt    string
	Kind      Kind
	Choices   []string
	NotBefore string // Date only: name of an earlier date field
	Checks    []Check
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Values holds what the user entered for one operation: the raw text for
// messages and the bound argument for statements.
type Values struct {
	raw map[string]string
	arg map[string]any
}

func NewValues() Values {
	return Values{raw: map[string]string{}, arg: map[string]any{}}
}

func (v Values) Str(name string) string { return v.raw[name] }

func (v Values) Arg(name string) any { return v.arg[name] }

func (v Values) Args(names ...string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = v.arg[n]
	}
	return out
}

func (v Values) Has(name string) bool {
	_, ok := v.raw[name]
	return ok
}

func (v Values) set(name, raw string, arg any) {
	v.raw[name] = raw
	v.arg[name] = arg
}

func (v Values) unset(name string) {
	delete(v.raw, name)
	delete(v.arg, name)
}

const msgEmpty = "Error! Empty input detected. Please enter input before hitting enter"

// bind applies the field's rule to in and returns the argument to bind.
func (f Field) bind(in string, v Values) (any, error) {
	if validate.IsEmpty(in) {
		return nil, &domain.ValidationError{Field: f.Name, Msg: msgEmpty}
	}
	switch f.Kind {
	case Number, Positive:
		if !validate.IsNumeric(in) {
			return nil, domain.Invalid(f.Name, "Error! A %s cannot contain letters or special characters", f.label())
		}
		n, err := strconv.ParseInt(in, 10, 64)
		if err != nil {
			return nil, domain.Invalid(f.Name, "Error! The %s %s is too large", f.label(), in)
		}
		if f.Kind == Positive && n == 0 {
			return nil, domain.Invalid(f.Name, "Error! The %s must be greater than zero", f.label())
		}
		return n, nil

	case Date:
		d, err := validate.ParseDate(in)
		if err != nil {
			return nil, domain.Invalid(f.Name, "Error! The given string is an invalid date format.\nThe format of the string should follow month/day/year")
		}
		iso := validate.ISODate(d)
		if f.NotBefore != "" {
			if prev, ok := v.Arg(f.NotBefore).(string); ok && iso < prev {
				return nil, domain.Invalid(f.Name, "Error! %s must not be before %s", in, v.Str(f.NotBefore))
			}
		}
		return iso, nil

	case Name:
		switch validate.CheckText(in) {
		case validate.TextTooLong:
			return nil, domain.Invalid(f.Name, "Error! A %s must be at most %d characters", f.label(), validate.MaxText)
		case validate.TextNonLetter:
			return nil, domain.Invalid(f.Name, "Error! A %s must not include digits or special characters", f.label())
		}
		return in, nil

	case Digits:
		if !validate.IsNumeric(in) {
			return nil, domain.Invalid(f.Name, "Error! A %s cannot contain letters or special characters", f.label())
		}
		if len(in) > validate.MaxDigits {
			return nil, domain.Invalid(f.Name, "Error! A %s must be at most %d digits", f.label(), validate.MaxDigits)
		}
		return in, nil

	case Text:
		if !validate.FitsText(in) {
			return nil, domain.Invalid(f.Name, "Error! The %s you entered exceeds the character limit.\nPlease use at most %d characters", f.label(), validate.MaxText)
		}
		return in, nil

	case Choice:
		for _, c := range f.Choices {
			if strings.EqualFold(in, c) {
				return c, nil
			}
		}
		return nil, domain.Invalid(f.Name, "Error! The %s must be one of: %s", f.label(), strings.Join(f.Choices, ", "))

	case YesNo:
		switch strings.ToLower(in) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		return nil, domain.Invalid(f.Name, "Error! Please answer yes or no")
	}
	return nil, fmt.Errorf("field %s: unknown kind %d", f.Name, f.Kind)
}

func isCancel(in string) bool {
	return strings.EqualFold(strings.TrimSpace(in), CancelWord)
}

// Engine runs the read-validate-retry loop for each field of an operation
// and then submits it.
type Engine struct {
	gw  domain.Gateway
	con *Console
}

func NewEngine(gw domain.Gateway, con *Console) *Engine {
	return &Engine{gw: gw, con: con}
}

// Collect reads fields in order. It returns domain.ErrCancelled on the cancel
// word and io.EOF when input ends; nothing is written to the database.
func (e *Engine) Collect(ctx context.Context, fields []Field) (Values, error) {
	v := NewValues()
	for _, f := range fields {
		if err := e.readField(ctx, f, v); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (e *Engine) readField(ctx context.Context, f Field, v Values) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.con.Println(f.Prompt)
		in, err := e.con.ReadLine(ctx)
		if err != nil {
			return err
		}
		if isCancel(in) {
			return domain.ErrCancelled
		}

		arg, err := f.bind(in, v)
		if err == nil {
			v.set(f.Name, in, arg)
			if err = e.verify(ctx, f, v); err != nil {
				v.unset(f.Name)
			}
		}
		if err == nil {
			return nil
		}

		observability.ObserveRejection(f.Name)
		var se *domain.StatementError
		if errors.As(err, &se) {
			e.con.Println("Error! Could not check the " + f.label() + ": " + se.Err.Error())
			continue
		}
		e.con.Println(err.Error())
	}
}

func (e *Engine) verify(ctx context.Context, f Field, v Values) error {
	for _, c := range f.Checks {
		n, err := e.gw.Count(ctx, c.Query, v.Args(c.Args...)...)
		if err != nil {
			return err
		}
		ok := false
		switch c.Want {
		case Exists:
			ok = n >= 1
		case Absent:
			ok = n == 0
		case Unique:
			ok = n == 1
		}
		if !ok {
			log.Debug().Str("field", f.Name).Int("rows", n).Msg("lookup rejected value")
			return &domain.ValidationError{Field: f.Name, Msg: c.Reject(v)}
		}
	}
	return nil
}

// Run collects the operation's fields and submits it. Cancellation and
// statement failures are reported on the console; only end of input and
// context cancellation are returned.
func (e *Engine) Run(ctx context.Context, op Operation) error {
	v, err := e.Collect(ctx, op.Fields)
	if err != nil {
		observability.ObserveOperation(op.ID, "cancelled")
		if errors.Is(err, domain.ErrCancelled) {
			log.Debug().Str("operation", op.ID).Msg("operation cancelled")
			e.con.Println("Operation cancelled.")
			return nil
		}
		return err
	}

	if err := op.Submit(ctx, e.gw, e.con, v); err != nil {
		observability.ObserveOperation(op.ID, "failed")
		log.Debug().Err(err).Str("operation", op.ID).Msg("operation failed")
		e.con.Println(err.Error())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return nil
	}
	observability.ObserveOperation(op.ID, "submitted")
	log.Debug().Str("operation", op.ID).Msg("operation submitted")
	return nil
}
