/*
Package engine runs seam templates. It reads a template file, hands it to the
transpile package, binds the caller's capability context as the positional
parameters of a generated Lua procedure, and invokes that procedure on a Lua
state owned by the run.

A context must provide a write capability that consumes output one chunk at a
time. The include and require capabilities are injected automatically when
the caller does not supply them: include re-enters the pipeline for a nested
template with a shallow, right-biased merge of the parent context, and
require rebases relative module paths onto the including file's directory
before delegating to the Lua runtime's own loader.

Two entry points share the pipeline. RunSync executes a template to
completion and returns its first error. RunAsync runs the template in the
background and reports completion through a callback invoked exactly once,
with the first error or nil. Template code is trusted; the engine provides no
sandboxing.
*/
package engine
