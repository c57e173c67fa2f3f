// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the calculator core and the outside
// world. They define what the core needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Evaluator]: Evaluates one binary operation (locally or remotely)
//   - [Renderer]: Receives the display state after every change
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (HTTP, zerolog, in-process arithmetic).
package ports
