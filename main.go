package main

import "github.com/frahmantamala/employee-admin/cmd"

func main() {
	cmd.Execute()
}
