package main

import migration "card-tokenizer/migrations"

func main() {
	migration.RunMigration()
}
