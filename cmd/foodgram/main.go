// @title        Foodgram API
// @version      1.0
// @description  食譜分享平台 Foodgram 的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Token <auth_token>
package main

import (
	"os"

	_ "foodgram/docs" // 引入 swag 產出的 docs
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitFunc(1)
	}
}
