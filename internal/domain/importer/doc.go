// Package importer contiene la normalización de texto a pedido usada por la importación
// masiva: normalización de celdas, mapeo de filas (planilla por encabezado o texto pegado
// separado por tabulaciones) y validación. Es lógica pura, sin acceso a persistencia.
package importer
