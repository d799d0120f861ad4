package main

import "taskhub/internal/app"

// @title           TaskHub API
// @version         1.0
// @description     API de gerenciamento de tarefas com categorias, prazos e regras de negócio.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
