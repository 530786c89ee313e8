// Package printing turns financial statements into PDF documents.
//
// Statements are rendered to HTML with html/template and printed to A4 PDF by a
// headless Chrome driven through the DevTools protocol (chromedp). The
// StatementPrinter is the entry point used by the application layer:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{
//	    ExecPath:       cfg.PDF.ChromePath,
//	    DefaultTimeout: cfg.PDF.Timeout,
//	    NoSandbox:      true,
//	})
//	if err != nil {
//	    return err
//	}
//	printer, err := NewStatementPrinter(renderer, logger)
//	if err != nil {
//	    return err
//	}
//	pdf, err := printer.IncomeStatementPDF(ctx, statement)
package printing
