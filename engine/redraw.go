package engine

import (
	"fmt"

	engineerrors "github.com/grovetools/nvimgui/errors"
	"github.com/grovetools/nvimgui/engine/rpc"
)

// decodeRedrawParams walks a `redraw` notification's params — an array
// of `[name, args1, args2, ...]` batches — and pushes one typed Event
// per args occurrence onto q. Unknown event names are ignored silently
// (the wire protocol is forward-compatible); malformed args for a
// known name drop only that occurrence and continue the batch.
//
// wake is invoked synchronously, in order, immediately after each
// flush event is pushed — not once at the end — because §4.5 forbids
// batching wakeups: a renderer blocked on the hook must see every
// flush as it happens.
func decodeRedrawParams(params []interface{}, q *EventQueue, wake Wakeup, onErr func(error)) {
	for _, raw := range params {
		batch, ok := raw.([]interface{})
		if !ok || len(batch) == 0 {
			continue
		}
		name, ok := batch[0].(string)
		if !ok {
			continue
		}
		for _, occurrence := range batch[1:] {
			args, ok := occurrence.([]interface{})
			if !ok {
				onErr(engineerrors.MalformedEventArgs(name, "occurrence is not an array"))
				continue
			}
			evt, err := decodeEvent(name, args)
			if err != nil {
				onErr(err)
				continue
			}
			if evt == nil {
				continue // name recognized but carries no queueable state (e.g. reserved)
			}
			q.Push(evt)
			if _, isFlush := evt.(FlushEvent); isFlush {
				wake.fire()
			}
		}
	}
}

func decodeEvent(name string, a []interface{}) (Event, error) {
	switch name {
	case "grid_resize":
		if len(a) < 3 {
			return nil, shortArgs(name)
		}
		return GridResizeEvent{Grid: asInt(a[0]), Width: asInt(a[1]), Height: asInt(a[2])}, nil

	case "grid_line":
		if len(a) < 4 {
			return nil, shortArgs(name)
		}
		cellsRaw, ok := a[3].([]interface{})
		if !ok {
			return nil, engineerrors.MalformedEventArgs(name, "cells is not an array")
		}
		cells := make([]GridLineCell, 0, len(cellsRaw))
		lastHl := 0
		for _, cr := range cellsRaw {
			c, ok := cr.([]interface{})
			if !ok || len(c) == 0 {
				continue
			}
			text, _ := c[0].(string)
			hl := lastHl
			if len(c) > 1 {
				hl = asInt(c[1])
			}
			repeat := 1
			if len(c) > 2 {
				repeat = asInt(c[2])
			}
			lastHl = hl
			cells = append(cells, GridLineCell{Text: text, HlID: hl, Repeat: repeat})
		}
		return GridLineEvent{Grid: asInt(a[0]), Row: asInt(a[1]), ColStart: asInt(a[2]), Cells: cells}, nil

	case "grid_scroll":
		if len(a) < 7 {
			return nil, shortArgs(name)
		}
		return GridScrollEvent{
			Grid: asInt(a[0]), Top: asInt(a[1]), Bot: asInt(a[2]),
			Left: asInt(a[3]), Right: asInt(a[4]), Rows: asInt(a[5]), Cols: asInt(a[6]),
		}, nil

	case "grid_clear":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return GridClearEvent{Grid: asInt(a[0])}, nil

	case "grid_cursor_goto":
		if len(a) < 3 {
			return nil, shortArgs(name)
		}
		return GridCursorGotoEvent{Grid: asInt(a[0]), Row: asInt(a[1]), Col: asInt(a[2])}, nil

	case "grid_destroy":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return GridDestroyEvent{Grid: asInt(a[0])}, nil

	case "win_pos":
		if len(a) < 6 {
			return nil, shortArgs(name)
		}
		return WinPosEvent{
			Grid: asInt(a[0]), Win: asHandle(a[1]),
			StartRow: asInt(a[2]), StartCol: asInt(a[3]),
			Width: asInt(a[4]), Height: asInt(a[5]),
		}, nil

	case "win_float_pos":
		if len(a) < 8 {
			return nil, shortArgs(name)
		}
		anchor, err := parseAnchor(a[2])
		if err != nil {
			return nil, err
		}
		return WinFloatPosEvent{
			Grid: asInt(a[0]), Win: asHandle(a[1]),
			Anchor: anchor, AnchorGrid: asInt(a[3]),
			AnchorRow: asFloat(a[4]), AnchorCol: asFloat(a[5]),
			Focusable: asBool(a[6]), ZIndex: asInt(a[7]),
		}, nil

	case "win_viewport":
		if len(a) < 7 {
			return nil, shortArgs(name)
		}
		scrollDelta := 0
		if len(a) > 7 {
			scrollDelta = asInt(a[7])
		}
		return WinViewportEvent{
			Grid: asInt(a[0]), Topline: asInt(a[2]), Botline: asInt(a[3]),
			Curline: asInt(a[4]), Curcol: asInt(a[5]), LineCount: asInt(a[6]),
			ScrollDelta: scrollDelta,
		}, nil

	case "win_viewport_margins":
		if len(a) < 6 {
			return nil, shortArgs(name)
		}
		return WinViewportMarginsEvent{
			Grid: asInt(a[0]), Top: asInt(a[2]), Bottom: asInt(a[3]),
			Left: asInt(a[4]), Right: asInt(a[5]),
		}, nil

	case "win_external_pos":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		return WinExternalPosEvent{Grid: asInt(a[0]), Win: asHandle(a[1])}, nil

	case "win_hide":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return WinHideEvent{Grid: asInt(a[0])}, nil

	case "win_close":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return WinCloseEvent{Grid: asInt(a[0])}, nil

	case "msg_set_pos":
		if len(a) < 5 {
			return nil, shortArgs(name)
		}
		sep, _ := a[3].(string)
		return MsgSetPosEvent{
			Grid: asInt(a[0]), Row: asInt(a[1]), Scrolled: asBool(a[2]),
			SepChar: sep, ZIndex: asInt(a[4]),
		}, nil

	case "hl_attr_define":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		attrMap, _ := a[1].(map[string]interface{})
		return HlAttrDefineEvent{ID: asInt(a[0]), Attr: decodeHlAttr(attrMap)}, nil

	case "default_colors_set":
		if len(a) < 3 {
			return nil, shortArgs(name)
		}
		return DefaultColorsSetEvent{Fg: int32(asInt(a[0])), Bg: int32(asInt(a[1])), Sp: int32(asInt(a[2]))}, nil

	case "hl_group_set":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		nameStr, _ := a[0].(string)
		return HlGroupSetEvent{Name: nameStr, ID: asInt(a[1])}, nil

	case "mode_info_set":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		list, _ := a[1].([]interface{})
		modes := make([]CursorModeInfo, 0, len(list))
		for _, mRaw := range list {
			m, ok := mRaw.(map[string]interface{})
			if !ok {
				continue
			}
			modes = append(modes, decodeCursorModeInfo(m))
		}
		return ModeInfoSetEvent{CursorStyleEnabled: asBool(a[0]), Modes: modes}, nil

	case "mode_change":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		mode, _ := a[0].(string)
		return ModeChangeEvent{Mode: mode, ModeIdx: asInt(a[1])}, nil

	case "option_set":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		optName, _ := a[0].(string)
		return OptionSetEvent{Name: optName, Value: a[1]}, nil

	case "set_title":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		title, _ := a[0].(string)
		return SetTitleEvent{Title: title}, nil

	case "set_icon":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		icon, _ := a[0].(string)
		return SetIconEvent{Icon: icon}, nil

	case "busy_start":
		return BusyStartEvent{}, nil
	case "busy_stop":
		return BusyStopEvent{}, nil
	case "mouse_on":
		return MouseOnEvent{}, nil
	case "mouse_off":
		return MouseOffEvent{}, nil
	case "suspend":
		return SuspendEvent{}, nil
	case "restart":
		return RestartEvent{}, nil
	case "flush":
		return FlushEvent{}, nil

	case "msg_show":
		if len(a) < 3 {
			return nil, shortArgs(name)
		}
		kind, _ := a[0].(string)
		content := flattenChunks(a[1])
		return MsgShowEvent{Kind: kind, Content: content, Replace: asBool(a[2])}, nil
	case "msg_clear":
		return MsgClearEvent{}, nil
	case "msg_showmode":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return MsgShowmodeEvent{Content: flattenChunks(a[0])}, nil
	case "msg_showcmd":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return MsgShowcmdEvent{Content: flattenChunks(a[0])}, nil
	case "msg_ruler":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return MsgRulerEvent{Content: flattenChunks(a[0])}, nil
	case "msg_history_show":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		entriesRaw, _ := a[0].([]interface{})
		entries := make([]string, 0, len(entriesRaw))
		for _, e := range entriesRaw {
			if pair, ok := e.([]interface{}); ok && len(pair) >= 2 {
				entries = append(entries, flattenChunks(pair[1]))
			}
		}
		return MsgHistoryShowEvent{Entries: entries}, nil

	case "cmdline_show":
		if len(a) < 6 {
			return nil, shortArgs(name)
		}
		firstc, _ := a[2].(string)
		prompt, _ := a[3].(string)
		return CmdlineShowEvent{
			Content: flattenChunks(a[0]), Pos: asInt(a[1]),
			Firstc: firstc, Prompt: prompt, Indent: asInt(a[4]), Level: asInt(a[5]),
		}, nil
	case "cmdline_hide":
		return CmdlineHideEvent{}, nil
	case "cmdline_pos":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		return CmdlinePosEvent{Pos: asInt(a[0]), Level: asInt(a[1])}, nil

	case "popupmenu_show":
		if len(a) < 5 {
			return nil, shortArgs(name)
		}
		itemsRaw, _ := a[0].([]interface{})
		items := make([]PopupmenuItem, 0, len(itemsRaw))
		for _, ir := range itemsRaw {
			fields, ok := ir.([]interface{})
			if !ok || len(fields) < 4 {
				continue
			}
			word, _ := fields[0].(string)
			kind, _ := fields[1].(string)
			menu, _ := fields[2].(string)
			info, _ := fields[3].(string)
			items = append(items, PopupmenuItem{Word: word, Kind: kind, Menu: menu, Info: info})
		}
		return PopupmenuShowEvent{Items: items, Selected: asInt(a[1]), Row: asInt(a[2]), Col: asInt(a[3]), GridID: asInt(a[4])}, nil
	case "popupmenu_hide":
		return PopupmenuHideEvent{}, nil
	case "popupmenu_select":
		if len(a) < 1 {
			return nil, shortArgs(name)
		}
		return PopupmenuSelectEvent{Selected: asInt(a[0])}, nil

	case "tabline_update":
		if len(a) < 2 {
			return nil, shortArgs(name)
		}
		tabsRaw, _ := a[1].([]interface{})
		tabs := make([]TablineTab, 0, len(tabsRaw))
		for _, tr := range tabsRaw {
			m, ok := tr.(map[string]interface{})
			if !ok {
				continue
			}
			nameStr, _ := m["name"].(string)
			tabs = append(tabs, TablineTab{Name: nameStr})
		}
		return TablineUpdateEvent{Current: asHandle(a[0]), Tabs: tabs}, nil

	default:
		return nil, nil // unknown event name: forward-compatible no-op
	}
}

func shortArgs(name string) error {
	return engineerrors.MalformedEventArgs(name, "too few arguments")
}

func parseAnchor(v interface{}) (Anchor, error) {
	s, _ := v.(string)
	switch s {
	case "NW":
		return AnchorNW, nil
	case "NE":
		return AnchorNE, nil
	case "SW":
		return AnchorSW, nil
	case "SE":
		return AnchorSE, nil
	default:
		return AnchorNW, engineerrors.MalformedEventArgs("win_float_pos", fmt.Sprintf("unknown anchor %q", s))
	}
}

func decodeHlAttr(m map[string]interface{}) HlAttr {
	var attr HlAttr
	if v, ok := m["foreground"]; ok {
		attr.Foreground = RGB(int32(asInt(v)))
	}
	if v, ok := m["background"]; ok {
		attr.Background = RGB(int32(asInt(v)))
	}
	if v, ok := m["special"]; ok {
		attr.Special = RGB(int32(asInt(v)))
	}
	attr.Bold = asBool(m["bold"])
	attr.Italic = asBool(m["italic"])
	attr.Underline = asBool(m["underline"])
	attr.Undercurl = asBool(m["undercurl"])
	attr.Underdotted = asBool(m["underdotted"])
	attr.Underdashed = asBool(m["underdashed"])
	attr.Underdouble = asBool(m["underdouble"])
	attr.Strikethrough = asBool(m["strikethrough"])
	attr.Reverse = asBool(m["reverse"])
	if v, ok := m["blend"]; ok {
		attr.Blend = asInt(v)
	}
	return attr
}

func decodeCursorModeInfo(m map[string]interface{}) CursorModeInfo {
	var info CursorModeInfo
	info.Name, _ = m["name"].(string)
	switch s, _ := m["cursor_shape"].(string); s {
	case "horizontal":
		info.Shape = CursorHorizontal
	case "vertical":
		info.Shape = CursorVertical
	default:
		info.Shape = CursorBlock
	}
	if v, ok := m["cell_percentage"]; ok {
		info.CellPercent = asInt(v)
	}
	if v, ok := m["blinkwait"]; ok {
		info.BlinkWait = asInt(v)
	}
	if v, ok := m["blinkon"]; ok {
		info.BlinkOn = asInt(v)
	}
	if v, ok := m["blinkoff"]; ok {
		info.BlinkOff = asInt(v)
	}
	if v, ok := m["attr_id"]; ok {
		info.AttrID = asInt(v)
	}
	if v, ok := m["attr_id_lm"]; ok {
		info.AttrIDLm = asInt(v)
	}
	return info
}

// flattenChunks joins a message's [[hl_id, text], ...] chunk array into
// plain text; the highlight id per chunk isn't needed by this layer,
// which treats message content as a single styled-as-default string.
func flattenChunks(v interface{}) string {
	chunks, ok := v.([]interface{})
	if !ok {
		return ""
	}
	out := ""
	for _, c := range chunks {
		pair, ok := c.([]interface{})
		if !ok || len(pair) < 2 {
			continue
		}
		text, _ := pair[1].(string)
		out += text
	}
	return out
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case uint64:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}

// asHandle decodes a Neovim ext-type window/tabpage handle. The wire
// representation is an Extension wrapping a msgpack-encoded int;
// callers here only need its integer identity, not the semantic type
// tag that distinguishes window/buffer/tabpage handles.
func asHandle(v interface{}) int {
	if ext, ok := v.(rpc.Extension); ok {
		decoded, _, err := rpc.DecodeValue(ext.Data)
		if err == nil {
			return asInt(decoded)
		}
		return 0
	}
	return asInt(v)
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return 0
	}
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
