package writer

import (
	"bytes"
	"compress/zlib"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sort"

	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/fonts"
	"github.com/docsmith/docgen/pdfobj"
)

type impl struct{}

// chunk pairs an allocated reference with its built object.
type chunk struct {
	ref pdfobj.ObjectRef
	obj pdfobj.Object
}

func (w *impl) Write(ctx context.Context, d *doc.Document, out io.Writer, cfg Config) error {
	if d == nil || len(d.Pages) == 0 {
		return fmt.Errorf("document has no pages")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	version := cfg.Version
	if version == "" {
		version = PDF17
	}

	alloc := &allocator{next: 1}
	catalogRef := alloc.take()
	pagesRef := alloc.take()

	// Fonts first so page resources can reference them.
	fontNames := sortedKeys(d.Fonts)
	fontRefs := make(map[string]pdfobj.ObjectRef, len(fontNames))
	var chunks []chunk
	for _, name := range fontNames {
		f := d.Fonts[name]
		ref := alloc.take()
		fontRefs[name] = ref
		chunks = append(chunks, buildFont(alloc, ref, f, cfg)...)
	}

	imageNames := sortedKeys(d.Images)
	imageRefs := make(map[string]pdfobj.ObjectRef, len(imageNames))
	for _, name := range imageNames {
		img := d.Images[name]
		ref := alloc.take()
		imageRefs[name] = ref
		obj, err := buildImage(img)
		if err != nil {
			return fmt.Errorf("image %s: %w", name, err)
		}
		chunks = append(chunks, chunk{ref, obj})
	}

	var pageRefs []pdfobj.ObjectRef
	var allFieldRefs []pdfobj.ObjectRef
	for _, page := range d.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		contentRef := alloc.take()
		chunks = append(chunks, chunk{contentRef, &pdfobj.Stream{Dict: pdfobj.Dict{}, Data: page.Content}})

		var widgetRefs []pdfobj.ObjectRef
		for _, field := range page.Fields {
			fieldRef := alloc.take()
			widgetRefs = append(widgetRefs, fieldRef)
			allFieldRefs = append(allFieldRefs, fieldRef)
			chunks = append(chunks, chunk{fieldRef, buildWidget(field)})
		}

		pageRef := alloc.take()
		pageRefs = append(pageRefs, pageRef)
		chunks = append(chunks, chunk{pageRef, buildPage(page, pagesRef, contentRef, widgetRefs, fontRefs, imageRefs)})
	}

	catalog := pdfobj.Dict{
		"Type":  pdfobj.Name("Catalog"),
		"Pages": pdfobj.Ref(pagesRef),
	}
	if len(allFieldRefs) > 0 {
		formRef := alloc.take()
		chunks = append(chunks, chunk{formRef, buildAcroForm(allFieldRefs, fontNames, d.Fonts, fontRefs)})
		catalog["AcroForm"] = pdfobj.Ref(formRef)
	}

	infoRef := alloc.take()
	chunks = append(chunks, chunk{infoRef, buildInfo(d.Info)})

	kids := make(pdfobj.Array, 0, len(pageRefs))
	for _, r := range pageRefs {
		kids = append(kids, pdfobj.Ref(r))
	}
	chunks = append(chunks, chunk{pagesRef, pdfobj.Dict{
		"Type":  pdfobj.Name("Pages"),
		"Count": pdfobj.Integer(len(pageRefs)),
		"Kids":  kids,
	}})
	chunks = append(chunks, chunk{catalogRef, catalog})

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ref.Num < chunks[j].ref.Num })

	var buf bytes.Buffer
	buf.WriteString("%PDF-" + string(version) + "\n%\xE2\xE3\xCF\xD3\n")
	offsets := make(map[int]int64, len(chunks))
	for _, c := range chunks {
		offsets[c.ref.Num] = int64(buf.Len())
		buf.Write(pdfobj.EncodeIndirect(c.ref, c.obj))
	}

	maxObjNum := chunks[len(chunks)-1].ref.Num
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxObjNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= maxObjNum; i++ {
		if off, ok := offsets[i]; ok {
			fmt.Fprintf(&buf, "%010d 00000 n \n", off)
		} else {
			buf.WriteString("0000000000 65535 f \n")
		}
	}

	// Deterministic file ID derived from the body bytes.
	id := md5.Sum(buf.Bytes())
	buf.WriteString("trailer\n")
	trailer := pdfobj.Dict{
		"Size": pdfobj.Integer(maxObjNum + 1),
		"Root": pdfobj.Ref(catalogRef),
		"Info": pdfobj.Ref(infoRef),
		"ID":   pdfobj.Array{hexString(id[:]), hexString(id[:])},
	}
	buf.Write(pdfobj.Encode(trailer))
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := out.Write(buf.Bytes())
	return err
}

type allocator struct{ next int }

func (a *allocator) take() pdfobj.ObjectRef {
	ref := pdfobj.ObjectRef{Num: a.next}
	a.next++
	return ref
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildFont(alloc *allocator, ref pdfobj.ObjectRef, f *fonts.Font, cfg Config) []chunk {
	if f.TrueType == nil {
		return []chunk{{ref, pdfobj.Dict{
			"Type":     pdfobj.Name("Font"),
			"Subtype":  pdfobj.Name("Type1"),
			"BaseFont": pdfobj.Name(f.BaseFont),
			"Encoding": pdfobj.Name("WinAnsiEncoding"),
		}}}
	}

	tt := f.TrueType
	descRef := alloc.take()
	fileRef := alloc.take()

	widths := make(pdfobj.Array, 0, 256-32)
	for code := 32; code < 256; code++ {
		widths = append(widths, pdfobj.Integer(tt.CharWidths[code]))
	}
	fontDict := pdfobj.Dict{
		"Type":           pdfobj.Name("Font"),
		"Subtype":        pdfobj.Name("TrueType"),
		"BaseFont":       pdfobj.Name(tt.PostScriptName),
		"FirstChar":      pdfobj.Integer(32),
		"LastChar":       pdfobj.Integer(255),
		"Widths":         widths,
		"Encoding":       pdfobj.Name("WinAnsiEncoding"),
		"FontDescriptor": pdfobj.Ref(descRef),
	}
	descDict := pdfobj.Dict{
		"Type":        pdfobj.Name("FontDescriptor"),
		"FontName":    pdfobj.Name(tt.PostScriptName),
		"Flags":       pdfobj.Integer(32),
		"ItalicAngle": pdfobj.Real(tt.ItalicAngle),
		"Ascent":      pdfobj.Real(tt.Ascent),
		"Descent":     pdfobj.Real(-tt.Descent),
		"CapHeight":   pdfobj.Real(tt.CapHeight),
		"StemV":       pdfobj.Integer(80),
		"MissingWidth": pdfobj.Integer(tt.MissingWidth),
		"FontBBox": pdfobj.Array{
			pdfobj.Real(tt.BBox[0]), pdfobj.Real(tt.BBox[1]),
			pdfobj.Real(tt.BBox[2]), pdfobj.Real(tt.BBox[3]),
		},
		"FontFile2": pdfobj.Ref(fileRef),
	}

	fileDict := pdfobj.Dict{"Length1": pdfobj.Integer(len(tt.Data))}
	data := tt.Data
	if cfg.CompressFonts {
		data = deflate(tt.Data)
		fileDict["Filter"] = pdfobj.Name("FlateDecode")
	}
	return []chunk{
		{ref, fontDict},
		{descRef, descDict},
		{fileRef, &pdfobj.Stream{Dict: fileDict, Data: data}},
	}
}

func buildImage(img *doc.Image) (pdfobj.Object, error) {
	colorSpace := "DeviceRGB"
	if img.Components == 1 {
		colorSpace = "DeviceGray"
	}
	dict := pdfobj.Dict{
		"Type":             pdfobj.Name("XObject"),
		"Subtype":          pdfobj.Name("Image"),
		"Width":            pdfobj.Integer(img.Width),
		"Height":           pdfobj.Integer(img.Height),
		"ColorSpace":       pdfobj.Name(colorSpace),
		"BitsPerComponent": pdfobj.Integer(8),
	}
	data := img.Data
	switch img.Format {
	case doc.ImageJPEG:
		dict["Filter"] = pdfobj.Name("DCTDecode")
	case doc.ImagePNG:
		dict["Filter"] = pdfobj.Name("FlateDecode")
		data = deflate(img.Data)
	default:
		return nil, fmt.Errorf("unsupported image format %d", img.Format)
	}
	return &pdfobj.Stream{Dict: dict, Data: data}, nil
}

func buildPage(page *doc.Page, parent, content pdfobj.ObjectRef, widgets []pdfobj.ObjectRef, fontRefs, imageRefs map[string]pdfobj.ObjectRef) pdfobj.Object {
	resources := pdfobj.Dict{}
	if len(page.FontRefs) > 0 {
		fontDict := pdfobj.Dict{}
		for _, name := range sortedKeys(page.FontRefs) {
			if ref, ok := fontRefs[name]; ok {
				fontDict[pdfobj.Name(name)] = pdfobj.Ref(ref)
			}
		}
		resources["Font"] = fontDict
	}
	if len(page.ImageRefs) > 0 {
		xobjDict := pdfobj.Dict{}
		for _, name := range sortedKeys(page.ImageRefs) {
			if ref, ok := imageRefs[name]; ok {
				xobjDict[pdfobj.Name(name)] = pdfobj.Ref(ref)
			}
		}
		resources["XObject"] = xobjDict
	}
	pageDict := pdfobj.Dict{
		"Type":   pdfobj.Name("Page"),
		"Parent": pdfobj.Ref(parent),
		"MediaBox": pdfobj.Array{
			pdfobj.Integer(0), pdfobj.Integer(0),
			pdfobj.Real(page.Width), pdfobj.Real(page.Height),
		},
		"Resources": resources,
		"Contents":  pdfobj.Ref(content),
	}
	if len(widgets) > 0 {
		annots := make(pdfobj.Array, 0, len(widgets))
		for _, r := range widgets {
			annots = append(annots, pdfobj.Ref(r))
		}
		pageDict["Annots"] = annots
	}
	return pageDict
}

func buildWidget(field *doc.FormField) pdfobj.Object {
	dict := pdfobj.Dict{
		"Type":    pdfobj.Name("Annot"),
		"Subtype": pdfobj.Name("Widget"),
		"T":       pdfobj.Str(field.Name),
		"F":       pdfobj.Integer(4), // print flag
		"Rect": pdfobj.Array{
			pdfobj.Real(field.Rect.LLX), pdfobj.Real(field.Rect.LLY),
			pdfobj.Real(field.Rect.URX), pdfobj.Real(field.Rect.URY),
		},
	}
	switch field.Kind {
	case doc.FieldCheckbox:
		state := "Off"
		if field.Checked {
			state = "Yes"
		}
		dict["FT"] = pdfobj.Name("Btn")
		dict["V"] = pdfobj.Name(state)
		dict["AS"] = pdfobj.Name(state)
		dict["MK"] = pdfobj.Dict{
			"BC": pdfobj.Array{pdfobj.Integer(0), pdfobj.Integer(0), pdfobj.Integer(0)},
			"BG": pdfobj.Array{pdfobj.Integer(1), pdfobj.Integer(1), pdfobj.Integer(1)},
		}
	default:
		dict["FT"] = pdfobj.Name("Tx")
		dict["V"] = pdfobj.Str(field.Value)
		dict["DA"] = pdfobj.Str("/Helv 10 Tf 0 g")
		if field.Bordered {
			dict["MK"] = pdfobj.Dict{
				"BC": pdfobj.Array{pdfobj.Integer(0), pdfobj.Integer(0), pdfobj.Integer(0)},
			}
		}
	}
	return dict
}

func buildAcroForm(fieldRefs []pdfobj.ObjectRef, fontNames []string, docFonts map[string]*fonts.Font, fontRefs map[string]pdfobj.ObjectRef) pdfobj.Object {
	fields := make(pdfobj.Array, 0, len(fieldRefs))
	for _, r := range fieldRefs {
		fields = append(fields, pdfobj.Ref(r))
	}
	form := pdfobj.Dict{
		"Fields":          fields,
		"NeedAppearances": pdfobj.Boolean(true),
		"DA":              pdfobj.Str("/Helv 0 Tf 0 g"),
	}
	// DR names /Helv: prefer an actual Helvetica resource, else the first font.
	helvRef, ok := pdfobj.ObjectRef{}, false
	for _, name := range fontNames {
		if docFonts[name].BaseFont == "Helvetica" {
			helvRef, ok = fontRefs[name], true
			break
		}
	}
	if !ok && len(fontNames) > 0 {
		helvRef, ok = fontRefs[fontNames[0]], true
	}
	if ok {
		form["DR"] = pdfobj.Dict{"Font": pdfobj.Dict{"Helv": pdfobj.Ref(helvRef)}}
	}
	return form
}

func buildInfo(info doc.Info) pdfobj.Object {
	dict := pdfobj.Dict{"Producer": pdfobj.Str("docgen")}
	if info.Title != "" {
		dict["Title"] = pdfobj.Str(info.Title)
	}
	if info.Author != "" {
		dict["Author"] = pdfobj.Str(info.Author)
	}
	if info.Subject != "" {
		dict["Subject"] = pdfobj.Str(info.Subject)
	}
	if info.Creator != "" {
		dict["Creator"] = pdfobj.Str(info.Creator)
	}
	if !info.CreationDate.IsZero() {
		dict["CreationDate"] = pdfobj.Str(info.CreationDate.UTC().Format("D:20060102150405Z"))
	}
	return dict
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

func hexString(b []byte) pdfobj.Object {
	return pdfobj.Str(fmt.Sprintf("%x", b))
}
