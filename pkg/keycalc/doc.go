// Package keycalc provides an embeddable four-function calculator that
// evaluates on a remote compute service and falls back to local arithmetic
// when that service is unreachable.
//
// # Basic Usage
//
//	calc, err := keycalc.New(keycalc.Config{
//	    ServiceURL: "http://localhost:8080",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, token := range []string{"9", "*", "3", "="} {
//	    if err := calc.Press(ctx, token); err != nil {
//	        log.Print(err)
//	    }
//	}
//	fmt.Println(calc.Display().Text) // 27
//
// # Fallback
//
// The first calculation that cannot reach the compute service switches the
// calculator to local evaluation for the rest of its life. [Calculator.Mode]
// reports the switch, and [Display.Offline] is set from then on. Errors
// reported by a reachable service, such as division by zero, are shown on the
// display and do not cause the switch.
//
// # Concurrency
//
// A Calculator is safe for concurrent use. While a calculation is in flight,
// every key except clear is refused with [ErrBusy].
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external dependencies:
//
//	calc, err := keycalc.New(cfg,
//	    keycalc.WithHTTPClient(mockClient),
//	    keycalc.WithLogger(customLogger),
//	    keycalc.WithRenderer(keycalc.RendererFunc(draw)),
//	)
package keycalc
