// Command rpcash projects retirement cashflows and the portfolio return needed to fund them.
package main

func main() {
	Execute()
}
