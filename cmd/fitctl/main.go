// Command fitctl runs maintenance tasks against the fitness tracker database.
package main

func main() {
	Execute()
}
