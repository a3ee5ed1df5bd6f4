package lre

import "fmt"

// FieldCount is the number of columns of an LRE record.
const FieldCount = 147

// Group is a section of the LRE record.
type Group string

const (
	GroupIdentification  Group = "identificacion"
	GroupTaxable         Group = "haberes_imponibles_tributables"
	GroupTaxableNotTaxed Group = "haberes_imponibles_no_tributables"
	GroupNonTaxable      Group = "haberes_no_imponibles_no_tributables"
	GroupNonTaxableTaxed Group = "haberes_no_imponibles_tributables"
	GroupDeductions      Group = "descuentos"
	GroupEmployer        Group = "aportes_empleador"
	GroupTotals          Group = "totales"
)

// Kind decides the placeholder of an unset field.
type Kind int

const (
	KindText Kind = iota
	KindAmount
)

// Field is one column of the LRE record.
type Field struct {
	Code  int
	Label string
	Group Group
	Kind  Kind
}

// Header renders the column name as the regulator expects it, e.g. "Sueldo(2101)".
func (f Field) Header() string {
	return fmt.Sprintf("%s(%d)", f.Label, f.Code)
}

// Placeholder is the explicit value of an inapplicable field.
func (f Field) Placeholder() string {
	if f.Kind == KindAmount {
		return "0"
	}
	return ""
}

func text(code int, label string) Field {
	return Field{Code: code, Label: label, Group: GroupIdentification, Kind: KindText}
}

func ident(code int, label string) Field {
	return Field{Code: code, Label: label, Group: GroupIdentification, Kind: KindAmount}
}

func amount(g Group, code int, label string) Field {
	return Field{Code: code, Label: label, Group: g, Kind: KindAmount}
}

// Layout is the ordered column set of the LRE record.
var Layout = buildLayout()

func buildLayout() []Field {
	fields := []Field{
		text(1101, "Rut trabajador"),
		text(1102, "Fecha inicio contrato"),
		text(1103, "Fecha término de contrato"),
		text(1104, "Causal término de contrato"),
		text(1105, "Región prestación de servicios"),
		text(1106, "Comuna prestación de servicios"),
		ident(1170, "Tipo impuesto a la renta"),
		ident(1146, "Técnico extranjero exención cot. previsionales"),
		ident(1107, "Código tipo de jornada"),
		ident(1108, "Persona con Discapacidad - Pensionado por Invalidez"),
		ident(1109, "Pensionado por vejez"),
		text(1141, "AFP"),
		ident(1142, "IPS (ExINP)"),
		text(1143, "FONASA - ISAPRE"),
		ident(1151, "AFC"),
		text(1110, "CCAF"),
		text(1152, "Org. administrador ley 16.744"),
		ident(1111, "Nro cargas familiares legales autorizadas"),
		ident(1112, "Nro de cargas familiares maternales"),
		ident(1113, "Nro de cargas familiares invalidez"),
		text(1114, "Tramo asignación familiar"),
	}
	for i := 1; i <= 10; i++ {
		fields = append(fields, text(1170+i, fmt.Sprintf("Rut org sindical %d", i)))
	}
	fields = append(fields,
		ident(1115, "Nro días trabajados en el mes"),
		ident(1116, "Nro días de licencia médica en el mes"),
		ident(1117, "Nro días de vacaciones en el mes"),
		ident(1118, "Subsidio trabajador joven"),
		text(1154, "Puesto Trabajo Pesado"),
		ident(1155, "APVI"),
		ident(1157, "APVC"),
		ident(1131, "Indemnización a todo evento"),
		text(1132, "Tasa indemnización a todo evento"),

		amount(GroupTaxable, 2101, "Sueldo"),
		amount(GroupTaxable, 2102, "Sobresueldo"),
		amount(GroupTaxable, 2103, "Comisiones (mensual)"),
		amount(GroupTaxable, 2104, "Semana corrida mensual (Art 45)"),
		amount(GroupTaxable, 2105, "Participación (mensual)"),
		amount(GroupTaxable, 2106, "Gratificación (mensual)"),
		amount(GroupTaxable, 2107, "Recargo 30% día domingo (Art. 38)"),
		amount(GroupTaxable, 2108, "Remun. variable pagada en vacaciones (Art 71)"),
		amount(GroupTaxable, 2109, "Remun. variable pagada en clausura (Art. 38 DFL 2)"),
		amount(GroupTaxable, 2110, "Aguinaldo"),
		amount(GroupTaxable, 2111, "Bonos u otras remun. fijas mensuales"),
		amount(GroupTaxable, 2112, "Tratos (mensual)"),
		amount(GroupTaxable, 2113, "Bonos u otras remun. variables mensuales o superiores a un mes"),
		amount(GroupTaxable, 2114, "Ejercicio opción no pactada en contrato"),
		amount(GroupTaxable, 2115, "Beneficios en especie constitutivos de remun"),
		amount(GroupTaxable, 2116, "Remuneraciones bimestrales"),
		amount(GroupTaxable, 2117, "Remuneraciones trimestrales"),
		amount(GroupTaxable, 2118, "Remuneraciones cuatrimestrales"),
		amount(GroupTaxable, 2119, "Remuneraciones semestrales"),
		amount(GroupTaxable, 2120, "Remuneraciones anuales"),
		amount(GroupTaxable, 2121, "Participación anual"),
		amount(GroupTaxable, 2122, "Gratificación anual"),
		amount(GroupTaxable, 2123, "Otras remuneraciones superiores a un mes"),
		amount(GroupTaxable, 2124, "Pago por horas de trabajo sindical"),
		amount(GroupTaxable, 2161, "Sueldo empresarial"),

		amount(GroupTaxableNotTaxed, 2201, "Subsidio por incapacidad laboral por licencia médica"),
		amount(GroupTaxableNotTaxed, 2202, "Beca de estudio"),
		amount(GroupTaxableNotTaxed, 2203, "Gratificaciones de zona"),
		amount(GroupTaxableNotTaxed, 2204, "Otros ingresos no constitutivos de renta"),

		amount(GroupNonTaxable, 2301, "Colación"),
		amount(GroupNonTaxable, 2302, "Movilización"),
		amount(GroupNonTaxable, 2303, "Viáticos"),
		amount(GroupNonTaxable, 2304, "Asignación de pérdida de caja"),
		amount(GroupNonTaxable, 2305, "Asignación de desgaste herramienta"),
		amount(GroupNonTaxable, 2311, "Asignación familiar legal"),
		amount(GroupNonTaxable, 2306, "Gastos por causa del trabajo"),
		amount(GroupNonTaxable, 2307, "Gastos por cambio de residencia"),
		amount(GroupNonTaxable, 2308, "Sala cuna"),
		amount(GroupNonTaxable, 2309, "Asignación trabajo a distancia o teletrabajo"),
		amount(GroupNonTaxable, 2347, "Depósito convenido hasta UF 900"),
		amount(GroupNonTaxable, 2310, "Alojamiento por razones de trabajo"),
		amount(GroupNonTaxable, 2312, "Asignación de traslación"),
		amount(GroupNonTaxable, 2313, "Indemnización por feriado legal"),
		amount(GroupNonTaxable, 2314, "Indemnización años de servicio"),
		amount(GroupNonTaxable, 2315, "Indemnización sustitutiva del aviso previo"),
		amount(GroupNonTaxable, 2316, "Indemnización fuero maternal"),
		amount(GroupNonTaxable, 2331, "Pago indemnización a todo evento"),

		amount(GroupNonTaxableTaxed, 2417, "Indemnizaciones voluntarias tributables"),
		amount(GroupNonTaxableTaxed, 2418, "Indemnizaciones contractuales tributables"),

		amount(GroupDeductions, 3141, "Cotización obligatoria previsional (AFP o IPS)"),
		amount(GroupDeductions, 3143, "Cotización obligatoria salud 7%"),
		amount(GroupDeductions, 3144, "Cotización voluntaria para salud"),
		amount(GroupDeductions, 3151, "Cotización AFC - trabajador"),
		amount(GroupDeductions, 3146, "Cotizaciones adicional trabajo pesado - trabajador"),
		amount(GroupDeductions, 3147, "Cotización APVi Mod A"),
		amount(GroupDeductions, 3148, "Cotización APVi Mod B hasta UF50"),
		amount(GroupDeductions, 3149, "Cotización APVc Mod A"),
		amount(GroupDeductions, 3150, "Cotización APVc Mod B hasta UF50"),
		amount(GroupDeductions, 3152, "Cuenta de ahorro voluntario AFP"),
		amount(GroupDeductions, 3161, "Impuesto retenido por remuneraciones"),
		amount(GroupDeductions, 3162, "Impuesto retenido por indemnizaciones"),
		amount(GroupDeductions, 3163, "Mayor retención de impuestos solicitada por el trabajador"),
		amount(GroupDeductions, 3164, "Impuesto retenido por reliquidación remun. devengadas otros períodos"),
		amount(GroupDeductions, 3165, "Diferencia impuesto reliquidación anual"),
		amount(GroupDeductions, 3166, "Retención préstamo clase media 2020 (Ley 21.252)"),
		amount(GroupDeductions, 3167, "Rebaja zona extrema DL 889"),
	)
	for i := 1; i <= 10; i++ {
		fields = append(fields, amount(GroupDeductions, 3170+i, fmt.Sprintf("Cuota sindical %d", i)))
	}
	fields = append(fields,
		amount(GroupDeductions, 3110, "Crédito social CCAF"),
		amount(GroupDeductions, 3181, "Cuota vivienda o educación"),
		amount(GroupDeductions, 3182, "Crédito cooperativas de ahorro"),
		amount(GroupDeductions, 3183, "Otros descuentos autorizados y solicitados por el trabajador"),
		amount(GroupDeductions, 3154, "Seguro complementario de salud"),
		amount(GroupDeductions, 3155, "Donaciones culturales y de reconstrucción"),
		amount(GroupDeductions, 3156, "Otros descuentos"),
		amount(GroupDeductions, 3157, "Pensiones de alimentos"),
		amount(GroupDeductions, 3158, "Descuento mujer casada (Art 59 CT)"),
		amount(GroupDeductions, 3159, "Descuentos por anticipos y préstamos"),

		amount(GroupEmployer, 4151, "AFC - Aporte empleador"),
		amount(GroupEmployer, 4152, "Aporte empleador seguro accidentes del trabajo y Ley SANNA"),
		amount(GroupEmployer, 4131, "Aporte empleador indemnización a todo evento"),
		amount(GroupEmployer, 4154, "Aporte adicional trabajo pesado - empleador"),
		amount(GroupEmployer, 4155, "Aporte empleador seguro invalidez y sobrevivencia"),
		amount(GroupEmployer, 4157, "APVC - Aporte Empleador"),

		amount(GroupTotals, 5201, "Total haberes"),
		amount(GroupTotals, 5210, "Total haberes imponibles y tributables"),
		amount(GroupTotals, 5220, "Total haberes imponibles no tributables"),
		amount(GroupTotals, 5230, "Total haberes no imponibles y no tributables"),
		amount(GroupTotals, 5240, "Total haberes no imponibles y tributables"),
		amount(GroupTotals, 5301, "Total descuentos"),
		amount(GroupTotals, 5361, "Total descuentos impuestos a las remuneraciones"),
		amount(GroupTotals, 5362, "Total descuentos impuestos por indemnizaciones"),
		amount(GroupTotals, 5341, "Total descuentos por cotizaciones del trabajador"),
		amount(GroupTotals, 5302, "Total otros descuentos"),
		amount(GroupTotals, 5410, "Total aportes empleador"),
		amount(GroupTotals, 5501, "Total líquido"),
		amount(GroupTotals, 5502, "Total indemnizaciones"),
		amount(GroupTotals, 5564, "Total indemnizaciones tributables"),
		amount(GroupTotals, 5565, "Total indemnizaciones no tributables"),
	)

	if len(fields) != FieldCount {
		panic(fmt.Sprintf("lre layout has %d fields, want %d", len(fields), FieldCount))
	}
	return fields
}

// Headers returns the header row.
func Headers() []string {
	out := make([]string, len(Layout))
	for i, f := range Layout {
		out[i] = f.Header()
	}
	return out
}
