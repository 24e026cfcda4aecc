package dumper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/rgonek/notedump/textbuf"
	"github.com/rgonek/notedump/tree"
)

var latexBullets = map[tree.Bullet]string{
	tree.BulletUnchecked: `\item[\Square] `,
	tree.BulletCrossed:   `\item[\XBox] `,
	tree.BulletChecked:   `\item[\CheckedBox] `,
	tree.BulletPlain:     `\item `,
}

// latexSectioning holds the heading command per document type, indexed by
// heading level.
var latexSectioning = map[DocumentType][tree.MaxHeadingLevel + 1]string{
	DocumentReport: {
		1: `\chapter{%s}`,
		2: `\section{%s}`,
		3: `\subsection{%s}`,
		4: `\subsubsection{%s}`,
		5: `\paragraph{%s}`,
	},
	DocumentArticle: {
		1: `\section{%s}`,
		2: `\subsection{%s}`,
		3: `\subsubsection{%s}`,
		4: `\paragraph{%s}`,
		5: `\subparagraph{%s}`,
	},
	DocumentBook: {
		1: `\part{%s}`,
		2: `\chapter{%s}`,
		3: `\section{%s}`,
		4: `\subsection{%s}`,
		5: `\subsubsection{%s}`,
	},
}

var latexInlineCommands = map[tree.Tag]string{
	tree.TagEmphasis: `\emph{`,
	tree.TagStrong:   `\textbf{`,
	tree.TagMark:     `\uline{`,
	tree.TagStrike:   `\sout{`,
}

// verbatimDelimiters are tried in order for \lstinline.
const verbatimDelimiters = "+*|$&%!-_"

// LaTeXDumper renders trees as a LaTeX body.
type LaTeXDumper struct {
	config Config
}

// NewLaTeX creates a LaTeX dumper.
func NewLaTeX(config Config) (*LaTeXDumper, error) {
	cfg, err := prepareConfig(config)
	if err != nil {
		return nil, err
	}
	return &LaTeXDumper{config: cfg}, nil
}

// Format returns FormatLaTeX.
func (d *LaTeXDumper) Format() Format { return FormatLaTeX }

// Dump renders t with default options.
func (d *LaTeXDumper) Dump(t *tree.Tree) (Result, error) {
	return d.DumpWithContext(context.Background(), t, DumpOptions{})
}

// DumpWithContext renders t. The document_type template option selects the
// sectioning commands.
func (d *LaTeXDumper) DumpWithContext(ctx context.Context, t *tree.Tree, opts DumpOptions) (Result, error) {
	if err := checkTree(t); err != nil {
		return Result{}, err
	}
	if d.config.Linker == nil {
		return Result{}, fmt.Errorf("latex: %w", ErrNoLinker)
	}
	d.config.Linker.SetUseBase(false)

	s := &latexState{state: newState(ctx, d.config, opts)}
	s.documentType = s.resolveDocumentType()

	var out textbuf.Buffer
	if err := s.dumpChildren(t.Root, &out, -1, true); err != nil {
		return Result{}, err
	}

	return Result{
		Output:   out.String(!t.Partial),
		Warnings: s.warnings,
	}, nil
}

type latexState struct {
	state
	documentType DocumentType
}

func (s *latexState) resolveDocumentType() DocumentType {
	value := DocumentType(s.options.Get(OptionDocumentType))
	if value == "" {
		value = s.config.DocumentType
	}
	if value.Valid() {
		return value
	}
	if value == "" {
		s.addWarning(WarningDocumentType, "", fmt.Sprintf("no document type set, assuming %q", DefaultDocumentType))
	} else {
		s.addWarning(WarningDocumentType, "", fmt.Sprintf("invalid document type %q, assuming %q", value, DefaultDocumentType))
	}
	return DefaultDocumentType
}

func (s *latexState) dumpChildren(parent *tree.Node, out *textbuf.Buffer, listLevel int, topLevel bool) error {
	if parent.Text != "" {
		out.Append(EncodeLaTeX(parent.Text))
	}

	for _, element := range parent.Children {
		if err := s.checkContext(); err != nil {
			return err
		}
		if err := s.dumpElement(element, out, listLevel); err != nil {
			return err
		}
		out.Append(tailText(element, topLevel, EncodeLaTeX))
	}
	return nil
}

// inline renders the text and children of element as a single string.
func (s *latexState) inline(element *tree.Node) (string, error) {
	var sub textbuf.Buffer
	if err := s.dumpChildren(element, &sub, -1, false); err != nil {
		return "", err
	}
	return sub.String(false), nil
}

func (s *latexState) dumpElement(element *tree.Node, out *textbuf.Buffer, listLevel int) error {
	switch element.Tag {
	case tree.TagPara, tree.TagDiv:
		indent, err := element.Indent()
		if err != nil {
			return err
		}
		var sub textbuf.Buffer
		if err := s.dumpChildren(element, &sub, -1, false); err != nil {
			return err
		}
		if indent > 0 {
			sub.PrefixLines(strings.Repeat("\t", indent))
		}
		out.Extend(&sub)

	case tree.TagHeading:
		level, err := element.HeadingLevel()
		if err != nil {
			return err
		}
		content, err := s.inline(element)
		if err != nil {
			return err
		}
		out.Append(fmt.Sprintf(latexSectioning[s.documentType][level], content))

	case tree.TagBullets:
		out.Append("\\begin{itemize}\n")
		if err := s.dumpChildren(element, out, listLevel+1, false); err != nil {
			return err
		}
		out.Append("\\end{itemize}")

	case tree.TagNumbered:
		start, err := ParseListStart(element.GetStringAttr("start", ""))
		if err != nil {
			return err
		}
		out.Append(fmt.Sprintf("\\begin{enumerate}[%s]\n", start.Numbering))
		if start.Offset > 1 {
			out.Append(fmt.Sprintf("\\setcounter{enumi}{%d}\n", start.Offset-1))
		}
		if err := s.dumpChildren(element, out, listLevel+1, false); err != nil {
			return err
		}
		out.Append("\\end{enumerate}")

	case tree.TagItem:
		bullet, err := element.Bullet()
		if err != nil {
			return err
		}
		out.Append(strings.Repeat("\t", max(listLevel, 0)) + latexBullets[bullet])
		if err := s.dumpChildren(element, out, listLevel, false); err != nil {
			return err
		}
		out.Append("\n")

	case tree.TagPre:
		indent, err := element.Indent()
		if err != nil {
			return err
		}
		var sub textbuf.Buffer
		sub.Append(element.Text)
		if indent > 0 {
			sub.PrefixLines(strings.Repeat("    ", indent))
		}
		out.Append("\n\\begin{lstlisting}\n")
		out.Extend(&sub)
		out.Append("\n\\end{lstlisting}\n")

	case tree.TagSub:
		out.Append(fmt.Sprintf("$_{%s}$", rawText(element)))

	case tree.TagSup:
		out.Append(fmt.Sprintf("$^{%s}$", rawText(element)))

	case tree.TagImage:
		return s.dumpImage(element, out)

	case tree.TagLink:
		rawHref, err := requireAttr(element, "href")
		if err != nil {
			return err
		}
		content, err := s.inline(element)
		if err != nil {
			return err
		}
		out.Append(fmt.Sprintf("\\href{%s}{%s}", s.config.Linker.Link(rawHref), content))

	case tree.TagEmphasis, tree.TagStrong, tree.TagMark, tree.TagStrike:
		content, err := s.inline(element)
		if err != nil {
			return err
		}
		out.Append(latexInlineCommands[element.Tag] + content + "}")

	case tree.TagCode:
		text := rawText(element)
		delim, ok := verbatimDelimiter(text)
		if !ok {
			return fmt.Errorf("inline code %q: %w", text, ErrNoDelimiter)
		}
		out.Append(`\lstinline` + delim + text + delim)

	case tree.TagLabel:
		content, err := s.inline(element)
		if err != nil {
			return err
		}
		out.Append(content)

	default:
		return unknownTag(element)
	}

	return nil
}

func verbatimDelimiter(text string) (string, bool) {
	for _, delim := range verbatimDelimiters {
		if !strings.ContainsRune(text, delim) {
			return string(delim), true
		}
	}
	return "", false
}

func (s *latexState) dumpImage(element *tree.Node, out *textbuf.Buffer) error {
	src, err := requireAttr(element, "src")
	if err != nil {
		return err
	}

	if element.GetStringAttr("type", "") == "equation" {
		if equation, ok := s.loadEquation(element, src); ok {
			out.Append("\\begin{math}\n", equation, "\n\\end{math}")
			return nil
		}
	}

	options := s.graphicsOptions(element)
	imagePath := localPath(s.config.Linker.Image(src))
	image := fmt.Sprintf("\\includegraphics[%s]{%s}", options, imagePath)
	if href, ok := element.Attr("href"); ok {
		image = fmt.Sprintf("\\href{%s}{%s}", s.config.Linker.Link(href), image)
	}
	out.Append(image)
	return nil
}

// loadEquation reads the LaTeX source stored next to an equation image.
func (s *latexState) loadEquation(element *tree.Node, src string) (string, bool) {
	source := strings.TrimSuffix(src, path.Ext(src)) + ".tex"

	file, err := s.config.Linker.ResolveFile(source)
	if err != nil || file == nil {
		message := fmt.Sprintf("could not find latex equation %q, using image", source)
		if err != nil {
			message = fmt.Sprintf("could not find latex equation %q, using image: %v", source, err)
		}
		s.addWarning(WarningEquationFallback, element.Tag, message)
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.addWarning(WarningUnresolvedFile, element.Tag, fmt.Sprintf("could not read latex equation %q: %v", source, err))
		return "", false
	}

	equation := strings.TrimSpace(string(data))
	if equation == "" {
		s.addWarning(WarningEquationFallback, element.Tag, fmt.Sprintf("latex equation %q is empty, using image", source))
		return "", false
	}
	return equation, true
}

// graphicsOptions converts pixel dimensions to inches at the configured dpi.
func (s *latexState) graphicsOptions(element *tree.Node) string {
	dpi := float64(s.config.ImageDPI)
	width, hasWidth := floatAttr(element, "width")
	height, hasHeight := floatAttr(element, "height")

	switch {
	case hasWidth && hasHeight:
		return fmt.Sprintf("width=%fin, height=%fin", width/dpi, height/dpi)
	case hasWidth:
		return fmt.Sprintf("width=%fin, keepaspectratio=true", width/dpi)
	case hasHeight:
		return fmt.Sprintf("height=%fin, keepaspectratio=true", height/dpi)
	default:
		return ""
	}
}

func floatAttr(element *tree.Node, key string) (float64, bool) {
	value, ok := element.Attr(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// localPath turns a file:// URI into a plain path.
func localPath(location string) string {
	if !strings.HasPrefix(location, "file://") {
		return location
	}
	parsed, err := url.Parse(location)
	if err != nil || parsed.Path == "" {
		return strings.TrimPrefix(location, "file://")
	}
	return parsed.Path
}
