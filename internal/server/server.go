package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New は共通ミドルウェアを載せたechoを返す。
// ルートは各handlerのRegisterRoutesで登録する。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
