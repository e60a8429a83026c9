// Package lua runs editing-content delegates written in Lua.
//
// A script defines a global function
//
//	function update_editing_content(text, location, length)
//	    return text:gsub("%d", ""), 0, 0
//	end
//
// which receives the text and selected range of the content about to be
// committed and returns either nil, to keep it, or the text and selected
// range to commit instead. Offsets are UTF-16 code units, like every range
// in the editor. The textkit module converts between them and Lua's byte
// indexes:
//
//	local textkit = require("textkit")
//	textkit.length(s)          -- UTF-16 length of s
//	textkit.byte_offset(s, i)  -- byte index of UTF-16 offset i
//	textkit.offset(s, b)       -- UTF-16 offset of byte index b
//
// # Sandbox
//
// Scripts run in a State with only the base, table, string and math
// libraries. dofile, loadfile, load and loadstring are removed, require
// only returns allowed modules and print goes to the debug log. Every call
// runs under an execution timeout; a script that exceeds it fails with
// ErrExecutionTimeout and the content is committed unchanged.
package lua
