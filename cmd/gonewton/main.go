// Command gonewton finds roots of single-variable functions with the
// Newton–Raphson method and serves the solver over HTTP and MCP.
package main

func main() {
	Execute()
}
