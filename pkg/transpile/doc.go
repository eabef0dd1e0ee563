/*
Package transpile converts raw template text into the source of an executable
Lua chunk. A template mixes literal output with embedded code sections fenced
by a configurable delimiter pair (the defaults are "%{" and "}%"). Literal
spans become write('...') calls with their contents escaped as Lua string
literals; code sections pass through verbatim as statements between those
calls.

The transpiler is a pure function over its inputs: the same template text,
delimiters, and mode always produce byte-identical output. Execution of the
generated chunk is the concern of the engine package.
*/
package transpile
