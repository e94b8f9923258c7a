// Package pdf lays cards out on printable PDF sheets.
//
// Cards are composed by the cardsmith engine at Config.PixelsPerInch and
// scaled to points, so a card is always 2.5in x 3.5in on paper. Pages are
// filled left to right, top to bottom, with the grid centred on the page.
// Optional cut marks go on their own PDF layer so they can be hidden when
// printing on pre-cut stock.
//
// Example:
//
//	cfg := pdf.DefaultConfig()
//	cfg.PageSize = "Letter"
//	cfg.CutMarks = true
//
//	err := pdf.Render(pdf.RenderRequest{
//		Cards:  cards,
//		Writer: outFile,
//		Theme:  cardsmith.DefaultTheme(),
//		Config: cfg,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The Go fonts are embedded by default; provide RegularFontBytes,
// BoldFontBytes and ItalicFontBytes to use another family.
package pdf
