package main

import (
	"tablebook/internal/app"
)

// @title           TableBook API
// @version         1.0
// @description     Бронирование столиков и оплата через симулятор банка.
// @BasePath        /
func main() {
	app.Run()
}
