// Staticlint собирает анализаторы, которыми проверяется код quranverse.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
//
// Состав:
//   - printf, shadow, structtag, unusedresult из golang.org/x/tools/go/analysis/passes;
//   - все SA анализаторы staticcheck;
//   - ST1003 (именование) из stylecheck и QF1001 из quickfix;
//   - noosexit: прямой вызов os.Exit в функции main пакета main.
//
// Точка входа сервиса поэтому выглядит так:
//
//	func main() {
//	    if err := run(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// extraChecks анализаторы staticcheck вне класса SA
var extraChecks = map[string]bool{
	"ST1003": true,
	"QF1001": true,
}

func analyzers() []*analysis.Analyzer {
	checks := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		unusedresult.Analyzer,
		NoOsExitAnalyzer,
	}

	for _, v := range staticcheck.Analyzers {
		checks = append(checks, v.Analyzer)
	}
	for _, v := range stylecheck.Analyzers {
		if extraChecks[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}
	for _, v := range quickfix.Analyzers {
		if extraChecks[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}
	return checks
}

func main() {
	multichecker.Main(analyzers()...)
}
