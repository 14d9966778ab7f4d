// Package docs содержит Swagger-описание API, регистрируемое через swag.Register.
// Документ ведётся вручную по swag-аннотациям хендлеров: при изменении рутов и
// аннотаций правится и эта спецификация.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Регистрация",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Вход",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Текущий пользователь",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/restaurants": {
            "get": {
                "tags": ["Restaurants"],
                "summary": "Список ресторанов",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Restaurants"],
                "summary": "Создать ресторан (админ)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/restaurants/{id}": {
            "get": {
                "tags": ["Restaurants"],
                "summary": "Один ресторан",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["Restaurants"],
                "summary": "Обновить ресторан (админ)",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Restaurants"],
                "summary": "Удалить ресторан (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/restaurants/{id}/tables": {
            "get": {
                "tags": ["Tables"],
                "summary": "Столы ресторана",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Tables"],
                "summary": "Создать стол (админ)",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/tables/{id}": {
            "put": {
                "tags": ["Tables"],
                "summary": "Обновить стол (админ)",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "tags": ["Tables"],
                "summary": "Удалить стол с бронями (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservations": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Список броней",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Reservations"],
                "summary": "Создать бронь",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/reservations/check-availability": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Проверить доступность стола",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservations/{id}": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Одна бронь",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["Reservations"],
                "summary": "Сменить статус брони (менеджер/админ)",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Reservations"],
                "summary": "Удалить бронь",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/foods": {
            "get": {
                "tags": ["Foods"],
                "summary": "Меню",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Foods"],
                "summary": "Добавить блюдо (менеджер/админ)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/foods/{id}": {
            "get": {
                "tags": ["Foods"],
                "summary": "Одно блюдо",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["Foods"],
                "summary": "Обновить блюдо (менеджер/админ)",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Foods"],
                "summary": "Удалить блюдо (менеджер/админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "История платежей",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Payments"],
                "summary": "Инициировать оплату",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/payments/verify-sms": {
            "post": {
                "tags": ["Payments"],
                "summary": "Подтвердить оплату SMS-кодом",
                "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/payments/result/{token}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Результат оплаты по токену",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/payments/{id}/receipt": {
            "get": {
                "tags": ["Payments"],
                "summary": "Квитанция PDF",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/manager/users": {
            "get": {
                "tags": ["Manager"],
                "summary": "Клиенты (менеджер)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/manager/users/{id}/block": {
            "post": {
                "tags": ["Manager"],
                "summary": "Заблокировать клиента (менеджер)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/manager/users/{id}/unblock": {
            "post": {
                "tags": ["Manager"],
                "summary": "Разблокировать клиента (менеджер)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "Все пользователи (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Удалить пользователя (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{id}/block": {
            "post": {
                "tags": ["Admin"],
                "summary": "Заблокировать пользователя (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{id}/unblock": {
            "post": {
                "tags": ["Admin"],
                "summary": "Разблокировать пользователя (админ)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/managers": {
            "get": {
                "tags": ["Admin"],
                "summary": "Список менеджеров (админ)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Создать менеджера (админ)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/managers/{id}/block": {
            "post": {
                "tags": ["Admin"],
                "summary": "Заблокировать пользователя (админ)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/managers/{id}/unblock": {
            "post": {
                "tags": ["Admin"],
                "summary": "Разблокировать пользователя (админ)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/managers/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Удалить пользователя (админ)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TableBook API",
	Description:      "Бронирование столиков и оплата через симулятор банка.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
