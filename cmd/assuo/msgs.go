package main

// Short messages (one-liners)
const (
	MsgRootShort = "Apply insertion patches over an immutable base source"
	MsgRootLong = `assuo compiles a TOML patch document: it resolves the base source,
applies every [[patch]] insertion in order, and writes the patched
bytes to stdout. Patch positions always refer to the original base
source, never to the output built so far.

The document is read from a positional argument or --file, fetched
with --url, or piped through stdin.`

	MsgInitShort = "Write a starter patch document"
	MsgInitLong  = "Write a starter patch document to the given file (default assuo.toml). Fails if the file already exists."

	MsgVersionShort = "Print version information"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFile    = "Load the patch document from disk"
	MsgFlagURL     = "Load the patch document from the internet"
)

// InitTemplate is the starter document written by `assuo init`.
const InitTemplate = `[source]
text = "Hello!"

[[patch]]
do = "insert"
way = "post"
spot = 5
source = { text = ", World" }
`
