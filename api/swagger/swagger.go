package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Timetable API",
        "description": "Weekly timetable generation with clash detection and document export",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Generation, manual edits and clash checks"},
        {"name": "Memory", "description": "Short-term input memory per session"},
        {"name": "Export", "description": "Workbook, PDF and CSV downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Session store unreachable"}
                }
            }
        },
        "/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing required data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/update-timetable": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Replace the entries of a session and re-detect clashes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/validate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Check an entry list for clashes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/{session_id}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Stored conflicts of a session",
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/memory/{session_id}": {
            "get": {
                "tags": ["Memory"],
                "summary": "Session memory",
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Memory"],
                "summary": "Merge non-null fields into session memory",
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/MemoryPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/memory/clear/{session_id}": {
            "post": {
                "tags": ["Memory"],
                "summary": "Forget session memory",
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/excel/{session_id}": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the unified grid as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Workbook attachment", "schema": {"type": "file"}},
                    "404": {"description": "Session not found"}
                }
            }
        },
        "/export/pdf/{session_id}": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the unified grid as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF attachment", "schema": {"type": "file"}},
                    "404": {"description": "Session not found"}
                }
            }
        },
        "/export/csv/{session_id}": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the entries as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV attachment", "schema": {"type": "file"}},
                    "404": {"description": "Session not found"}
                }
            }
        }
    },
    "definitions": {
        "Teacher": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "subjects": {"type": "array", "items": {"type": "string"}},
                "availability": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            },
            "required": ["name"]
        },
        "Subject": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "semester": {"type": "string"},
                "sessions_per_week": {"type": "integer", "minimum": 0}
            },
            "required": ["name"]
        },
        "ScheduleEntry": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "time_slot": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"},
                "classroom": {"type": "string"},
                "semester": {"type": "string"},
                "subject_color": {"type": "string"}
            },
            "required": ["day", "time_slot", "subject", "teacher", "classroom"]
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["unplaced", "teacher", "classroom", "cohort"]},
                "semester": {"type": "string"},
                "teacher": {"type": "string"},
                "classroom": {"type": "string"},
                "day": {"type": "string"},
                "time_slot": {"type": "string"},
                "subjects": {"type": "array", "items": {"type": "string"}},
                "missing_sessions": {"type": "integer"},
                "suggestions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "teachers": {"type": "array", "items": {"$ref": "#/definitions/Teacher"}},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/Subject"}},
                "classrooms": {"type": "array", "items": {"type": "string"}},
                "timeSlots": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"type": "string"}},
                "semesters": {"type": "array", "items": {"type": "string"}},
                "preferences": {"type": "object"}
            }
        },
        "MemoryPatch": {
            "type": "object",
            "properties": {
                "teachers": {"type": "array", "items": {"$ref": "#/definitions/Teacher"}},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/Subject"}},
                "classrooms": {"type": "array", "items": {"type": "string"}},
                "timeSlots": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"type": "string"}},
                "semesters": {"type": "array", "items": {"type": "string"}},
                "preferences": {"type": "object"}
            }
        },
        "UpdateTimetableRequest": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/ScheduleEntry"}},
                "memory_updates": {"$ref": "#/definitions/MemoryPatch"}
            },
            "required": ["session_id"]
        },
        "ValidateTimetableRequest": {
            "type": "object",
            "properties": {
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/ScheduleEntry"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
