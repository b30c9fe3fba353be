// Package script runs focus movement written in Lua.
//
// A script defines a global function
//
//	function move(items, focused, cycle)
//	  -- items:   array of item ids in document order
//	  -- focused: 1-based index of the focused item
//	  -- cycle:   whether wrapping is allowed
//	  return index -- or nil to decline
//	end
//
// Scripts run with the base, table, string and math libraries only. A
// script that errors, runs too long or returns an index out of range
// declines the move.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/keying"
)

// DefaultTimeout bounds one call of move.
const DefaultTimeout = 100 * time.Millisecond

// FuncName is the global the script must define.
const FuncName = "move"

var (
	// ErrCompile wraps syntax and load-time errors.
	ErrCompile = errors.New("script compile failed")
	// ErrNoMove is returned when the script does not define move.
	ErrNoMove = errors.New("script does not define function " + FuncName)
	// ErrClosed is returned by calls on a closed script.
	ErrClosed = errors.New("script closed")
)

// ItemsFunc lists the navigable items of a container.
type ItemsFunc func(container dom.Element) []dom.Element

// Option configures a Script.
type Option func(*Script)

// WithTimeout bounds each call of move.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Script) {
		if log != nil {
			s.log = log
		}
	}
}

// Script is a compiled movement script. It owns a Lua state and must be
// used from one goroutine.
type Script struct {
	name    string
	L       *lua.LState
	fn      *lua.LFunction
	timeout time.Duration
	log     *zap.Logger
}

// Compile loads src and looks up its move function. name is used in errors
// and logs.
func Compile(name, src string, opts ...Option) (*Script, error) {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrCompile, name, err)
	}
	fn, ok := L.GetGlobal(FuncName).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoMove)
	}
	s.L = L
	s.fn = fn
	return s, nil
}

// openSafeLibraries opens the libraries a movement script may use and
// removes the loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Name returns the script's name.
func (s *Script) Name() string { return s.name }

// Pick calls move with the given ids and 0-based focused index and returns
// the 0-based index it chose.
func (s *Script) Pick(ids []string, focused int, cycle bool) (int, bool, error) {
	if s.L == nil {
		return 0, false, ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	items := s.L.NewTable()
	for _, id := range ids {
		items.Append(lua.LString(id))
	}

	err := s.L.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true},
		items, lua.LNumber(focused+1), lua.LBool(cycle))
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", s.name, err)
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, false, nil
	}
	idx := int(n) - 1
	if float64(n) != float64(int(n)) || idx < 0 || idx >= len(ids) {
		return 0, false, nil
	}
	return idx, true, nil
}

// MoveFunc adapts the script to keying. Runtime errors decline the move
// and are logged.
func (s *Script) MoveFunc(items ItemsFunc) keying.MoveFunc {
	return func(container, focused dom.Element, info keying.Info) (dom.Element, bool) {
		list := items(container)
		cur := -1
		ids := make([]string, len(list))
		for i, el := range list {
			ids[i] = el.ID()
			if focused != nil && el.ID() == focused.ID() {
				cur = i
			}
		}
		if cur < 0 {
			return nil, false
		}
		idx, ok, err := s.Pick(ids, cur, info.Cycle)
		if err != nil {
			s.log.Warn("Movement script failed", zap.String("script", s.name), zap.Error(err))
			return nil, false
		}
		if !ok || idx == cur {
			return nil, false
		}
		return list[idx], true
	}
}

// Close releases the Lua state. It is safe to call more than once.
func (s *Script) Close() {
	if s.L != nil {
		s.L.Close()
		s.L = nil
	}
}
