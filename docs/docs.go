// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}",
        "contact": {
            "name": "API Support",
            "email": "support@institute.example.com"
        }
    },
    "servers": [
        {
            "url": "/api/v1"
        }
    ],
    "paths": {
        "/courses": {
            "post": {
                "tags": [
                    "courses"
                ],
                "summary": "Create a course",
                "operationId": "createCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "courses"
                ],
                "summary": "List courses",
                "operationId": "listCourses",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": [
                    "courses"
                ],
                "summary": "Get a course",
                "operationId": "getCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "courses"
                ],
                "summary": "Update a course",
                "operationId": "updateCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "courses"
                ],
                "summary": "Delete a course",
                "operationId": "deleteCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/students": {
            "post": {
                "tags": [
                    "students"
                ],
                "summary": "Register a student",
                "operationId": "createStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "students"
                ],
                "summary": "List students",
                "operationId": "listStudents",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/students/{id}": {
            "get": {
                "tags": [
                    "students"
                ],
                "summary": "Get a student",
                "operationId": "getStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "students"
                ],
                "summary": "Update a student",
                "operationId": "updateStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "students"
                ],
                "summary": "Delete a student",
                "operationId": "deleteStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees": {
            "post": {
                "tags": [
                    "fees"
                ],
                "summary": "Create a fee ledger",
                "operationId": "createFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "fees"
                ],
                "summary": "List fee ledgers",
                "operationId": "listFees",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/overdue/refresh": {
            "post": {
                "tags": [
                    "fees"
                ],
                "summary": "Mark past-due ledgers overdue",
                "operationId": "refreshOverdueFees",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/student/{studentId}": {
            "get": {
                "tags": [
                    "fees"
                ],
                "summary": "List a student's ledgers",
                "operationId": "listFeesByStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/course/{courseId}": {
            "get": {
                "tags": [
                    "fees"
                ],
                "summary": "List a course's ledgers",
                "operationId": "listFeesByCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/{id}": {
            "get": {
                "tags": [
                    "fees"
                ],
                "summary": "Get a fee ledger",
                "operationId": "getFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "fees"
                ],
                "summary": "Update ledger terms",
                "operationId": "updateFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "fees"
                ],
                "summary": "Delete a ledger without payments",
                "operationId": "deleteFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/{id}/cancel": {
            "post": {
                "tags": [
                    "fees"
                ],
                "summary": "Cancel a ledger",
                "operationId": "cancelFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/{id}/discount": {
            "post": {
                "tags": [
                    "fees"
                ],
                "summary": "Apply a discount",
                "operationId": "applyFeeDiscount",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/{id}/late-fee": {
            "post": {
                "tags": [
                    "fees"
                ],
                "summary": "Apply a late fee",
                "operationId": "applyLateFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/{id}/payments": {
            "get": {
                "tags": [
                    "payments"
                ],
                "summary": "List a ledger's payments",
                "operationId": "listPaymentsByFee",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/receipt/{paymentId}": {
            "get": {
                "tags": [
                    "payments"
                ],
                "summary": "Get a payment receipt",
                "operationId": "getReceipt",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "paymentId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Create a payment attempt",
                "operationId": "createPayment",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "payments"
                ],
                "summary": "List payment attempts",
                "operationId": "listPayments",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments/gateway/notification": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Gateway payment notification",
                "operationId": "gatewayNotification",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/fees/payments/student/{studentId}": {
            "get": {
                "tags": [
                    "payments"
                ],
                "summary": "List a student's payments",
                "operationId": "listPaymentsByStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments/{id}": {
            "get": {
                "tags": [
                    "payments"
                ],
                "summary": "Get a payment attempt",
                "operationId": "getPayment",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments/{id}/process": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Process a pending payment",
                "operationId": "processPayment",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments/{id}/retry": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Retry a failed payment",
                "operationId": "retryPayment",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/fees/payments/{id}/cancel": {
            "post": {
                "tags": [
                    "payments"
                ],
                "summary": "Cancel a payment",
                "operationId": "cancelPayment",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams": {
            "post": {
                "tags": [
                    "exams"
                ],
                "summary": "Schedule an exam",
                "operationId": "createExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "exams"
                ],
                "summary": "List exams",
                "operationId": "listExams",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/course/{courseId}": {
            "get": {
                "tags": [
                    "exams"
                ],
                "summary": "List a course's exams",
                "operationId": "listExamsByCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}": {
            "get": {
                "tags": [
                    "exams"
                ],
                "summary": "Get an exam",
                "operationId": "getExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "exams"
                ],
                "summary": "Update an exam",
                "operationId": "updateExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "exams"
                ],
                "summary": "Delete an exam without results",
                "operationId": "deleteExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/start": {
            "post": {
                "tags": [
                    "exams"
                ],
                "summary": "Start an exam",
                "operationId": "startExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/complete": {
            "post": {
                "tags": [
                    "exams"
                ],
                "summary": "Complete an exam",
                "operationId": "completeExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/cancel": {
            "post": {
                "tags": [
                    "exams"
                ],
                "summary": "Cancel an exam",
                "operationId": "cancelExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/postpone": {
            "post": {
                "tags": [
                    "exams"
                ],
                "summary": "Postpone an exam",
                "operationId": "postponeExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/submit": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Record a student's marks",
                "operationId": "submitResult",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/results": {
            "get": {
                "tags": [
                    "results"
                ],
                "summary": "List an exam's results",
                "operationId": "listResultsByExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/evaluate": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Grade and rank an exam",
                "operationId": "evaluateExam",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/{id}/results/publish": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Publish every result of an exam",
                "operationId": "publishExamResults",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/results/student/{studentId}": {
            "get": {
                "tags": [
                    "results"
                ],
                "summary": "List a student's results",
                "operationId": "listResultsByStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/results/{resultId}": {
            "get": {
                "tags": [
                    "results"
                ],
                "summary": "Get a result",
                "operationId": "getResult",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "resultId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/results/{resultId}/publish": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Publish a result",
                "operationId": "publishResult",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "resultId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/results/{resultId}/absent": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Mark a student absent",
                "operationId": "markResultAbsent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "resultId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/exams/results/{resultId}/disqualify": {
            "post": {
                "tags": [
                    "results"
                ],
                "summary": "Disqualify a result",
                "operationId": "disqualifyResult",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "resultId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications": {
            "post": {
                "tags": [
                    "certifications"
                ],
                "summary": "Issue a certificate",
                "operationId": "issueCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "List certificates",
                "operationId": "listCertificates",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/verify/{code}": {
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "Verify a certificate by code",
                "operationId": "verifyCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ]
            }
        },
        "/certifications/student/{studentId}": {
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "List a student's certificates",
                "operationId": "listCertificatesByStudent",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/course/{courseId}": {
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "List a course's certificates",
                "operationId": "listCertificatesByCourse",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/{id}": {
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "Get a certificate",
                "operationId": "getCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/{id}/generate": {
            "post": {
                "tags": [
                    "certifications"
                ],
                "summary": "Render the certificate PDF",
                "operationId": "generateCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/{id}/download": {
            "get": {
                "tags": [
                    "certifications"
                ],
                "summary": "Get a download link",
                "operationId": "downloadCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/{id}/status": {
            "put": {
                "tags": [
                    "certifications"
                ],
                "summary": "Change certificate status",
                "operationId": "updateCertificateStatus",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        },
        "/certifications/{id}/revoke": {
            "post": {
                "tags": [
                    "certifications"
                ],
                "summary": "Revoke a certificate",
                "operationId": "revokeCertificate",
                "responses": {
                    "default": {
                        "description": "Response envelope",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "CenterHeader": []
                    }
                ]
            }
        }
    },
    "components": {
        "securitySchemes": {
            "CenterHeader": {
                "type": "apiKey",
                "in": "header",
                "name": "X-Center-ID",
                "description": "Training center the request operates on"
            }
        },
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {},
                    "error": {
                        "$ref": "#/components/schemas/ErrorInfo"
                    },
                    "meta": {
                        "$ref": "#/components/schemas/Meta"
                    }
                }
            },
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string",
                        "example": "ERR_NOT_FOUND"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "details": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {
                                "field": {
                                    "type": "string"
                                },
                                "message": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "timestamp": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "Meta": {
                "type": "object",
                "properties": {
                    "total": {
                        "type": "integer"
                    },
                    "page": {
                        "type": "integer"
                    },
                    "page_size": {
                        "type": "integer"
                    },
                    "total_pages": {
                        "type": "integer"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Institute Backend API",
	Description:      "Fees, payments, exam results and certificates for training centers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
