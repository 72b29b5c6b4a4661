// Package printing renders certificates to PDF.
//
// TemplateEngine fills the embedded HTML layout from a certification
// Document and ChromedpRenderer prints the result with headless Chrome:
//
//	engine, err := printing.NewTemplateEngine(printing.WithInstitution("Acme Academy"))
//	if err != nil {
//	    return err
//	}
//	renderer, err := printing.NewChromedpRenderer(engine, printing.ChromedpConfig{MaxParallel: 2})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//	pdf, err := renderer.Render(ctx, doc)
package printing
