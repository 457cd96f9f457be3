// Package docs registra a especificação OpenAPI servida em /swagger/.
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
        "/zones": {
            "get": {"tags": ["zones"], "summary": "Lista todas as zonas", "produces": ["application/json"], "responses": {"200": {"description": "Lista de zonas"}}}
        },
        "/zones/root": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["zones"], "summary": "Cria uma zona raiz", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Zona criada com sucesso"}, "400": {"description": "Payload ou tipo inválido"}, "422": {"description": "Posicionamento rejeitado"}}}
        },
        "/zones/root/{id}": {
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["zones"], "summary": "Atualiza uma zona raiz", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Zona atualizada"}}}
        },
        "/zones/child": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["zones"], "summary": "Cria uma zona filha", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Zona criada com sucesso"}, "422": {"description": "Posicionamento rejeitado"}}}
        },
        "/zones/child/{id}": {
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["zones"], "summary": "Atualiza uma zona filha", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Zona atualizada"}}}
        },
        "/zones/{id}": {
            "get": {"tags": ["zones"], "summary": "Obtém uma zona por ID", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Zona encontrada"}, "404": {"description": "Zona não encontrada"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["zones"], "summary": "Remove uma zona", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "Nenhum conteúdo"}, "409": {"description": "Zona possui dependentes"}}}
        },
        "/shelves": {
            "get": {"tags": ["shelves"], "summary": "Lista todas as prateleiras", "responses": {"200": {"description": "Lista de prateleiras"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["shelves"], "summary": "Cria uma prateleira", "consumes": ["application/json"], "responses": {"201": {"description": "Prateleira criada com sucesso"}}}
        },
        "/shelves/{id}": {
            "get": {"tags": ["shelves"], "summary": "Obtém uma prateleira por ID", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Prateleira encontrada"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["shelves"], "summary": "Atualiza uma prateleira", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Prateleira atualizada"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["shelves"], "summary": "Remove uma prateleira", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "Nenhum conteúdo"}, "409": {"description": "Prateleira ocupada"}}}
        },
        "/shelves/{id}/column/{columnId}": {
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["shelves"], "summary": "Atribui uma prateleira a uma coluna", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "columnId", "in": "path", "required": true}], "responses": {"200": {"description": "Prateleira atribuída"}}}
        },
        "/shelves/{id}/occupancy": {
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["shelves"], "summary": "Altera a ocupação de uma prateleira", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Prateleira atualizada"}}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo guarda as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "golayout API",
	Description:      "Layout espacial do armazém: zonas, prateleiras e validação de posicionamento.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
