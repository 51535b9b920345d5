// Package diagnostics implements a language server that treats a grammar
// text file (spec.md §6) as the edited document: on open/change/save it
// re-parses the grammar and publishes PublishDiagnostics notifications for
// any format error, plus a smoke-parse warning against a configured
// sentence set. It is the direct analogue of the teacher's
// java/codebase/lsp.go, retargeted from Java source files to grammar
// source files.
package diagnostics

import (
	"errors"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/JosephPotashnik/EarleyParser/chart"
	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/grammarsrc"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

const lsName = "earley"

// Server is the grammar-file language server.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	vocab          *vocab.Vocabulary
	smokeSentences [][]string
}

// NewServer builds a Server. vocabulary and smokeSentences are optional
// (either may be nil/empty): when both are set, every didOpen/didChange
// additionally smoke-parses the sentence set against the edited grammar
// and reports any sentence that fails to parse as a non-fatal warning.
func NewServer(version string, vocabulary *vocab.Vocabulary, smokeSentences [][]string) *Server {
	ls := &Server{
		version:        version,
		vocab:          vocabulary,
		smokeSentences: smokeSentences,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio starts the server over stdin/stdout, blocking until shutdown.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error { return nil }

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.diagnoseAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	ls.diagnoseAndPublish(ctx, params.TextDocument.URI, whole.Text)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.diagnoseAndPublish(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) diagnoseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diags := ls.diagnose(text)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// diagnose re-parses text as a grammar file. On a format error it returns
// that single error diagnostic, placed at the offending line when
// grammarsrc reports one and at line 0 otherwise. Else it returns one
// warning per unreachable nonterminal plus one per smoke-parse failure,
// when a vocabulary and sentence set are configured.
func (ls *Server) diagnose(text string) []protocol.Diagnostic {
	rules, err := grammarsrc.Read(strings.NewReader(text))
	if err != nil {
		return []protocol.Diagnostic{formatErrorDiagnostic(err)}
	}

	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		return []protocol.Diagnostic{{
			Range:    lineRange(0),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Message:  err.Error(),
		}}
	}

	var diags []protocol.Diagnostic
	diags = append(diags, unreachableSymbolDiagnostics(g)...)
	diags = append(diags, ls.smokeParseDiagnostics(g)...)
	return diags
}

// unreachableSymbolDiagnostics flags a nonterminal that the schematic set
// defines but START's reachability walk never visits: dead grammar, not a
// parse error, reported as a warning.
func unreachableSymbolDiagnostics(g *grammar.Grammar) []protocol.Diagnostic {
	var diags []protocol.Diagnostic
	for _, lhs := range g.Unreachable() {
		diags = append(diags, protocol.Diagnostic{
			Range:    lineRange(0),
			Severity: severityPtr(protocol.DiagnosticSeverityWarning),
			Message:  "unreachable from START: " + lhs,
		})
	}
	return diags
}

// smokeParseDiagnostics parses every configured sentence against g and
// reports, as a warning, every sentence that fails to parse (spec.md §7's
// "vocabulary miss during bigram statistics" concern, generalized here to
// plain parse failure since this server has no bigram model).
func (ls *Server) smokeParseDiagnostics(g *grammar.Grammar) []protocol.Diagnostic {
	if ls.vocab == nil || len(ls.smokeSentences) == 0 {
		return nil
	}

	var diags []protocol.Diagnostic
	for _, sentence := range ls.smokeSentences {
		p := chart.NewParser(g, ls.vocab, sentence, 0, chart.Options{})
		if accepted, _ := p.ParseSentence(); !accepted {
			diags = append(diags, protocol.Diagnostic{
				Range:    lineRange(0),
				Severity: severityPtr(protocol.DiagnosticSeverityWarning),
				Message:  "smoke sentence rejected by this grammar: " + strings.Join(sentence, " "),
			})
		}
	}
	return diags
}

func formatErrorDiagnostic(err error) protocol.Diagnostic {
	var lineErr *grammarsrc.LineError
	if errors.As(err, &lineErr) {
		return protocol.Diagnostic{
			Range:    lineRange(lineErr.Line - 1),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Message:  lineErr.Err.Error(),
		}
	}
	return protocol.Diagnostic{
		Range:    lineRange(0),
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Message:  err.Error(),
	}
}

func lineRange(line int) protocol.Range {
	if line < 0 {
		line = 0
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: 0},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: 1000},
	}
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func boolPtr(b bool) *bool                                                  { return &b }
func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
